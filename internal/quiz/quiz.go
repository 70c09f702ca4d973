// Package quiz builds the five-question quiz for a body and scores it.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/san-kum/orrery/internal/remote"
)

// OptionCount is the number of choices per question.
const OptionCount = 3

var ErrQuizFinished = errors.New("quiz: already finished")

// Question holds three options, one of which equals Answer.
type Question struct {
	Text    string
	Answer  float64
	Options [OptionCount]float64
	Unit    string
}

// Correct is the index of the right option.
func (q Question) Correct() int {
	for i, v := range q.Options {
		if v == q.Answer {
			return i
		}
	}
	return -1
}

// Label formats option i for display.
func (q Question) Label(i int) string {
	v := q.Options[i]
	switch q.Unit {
	case "kg":
		return strconv.FormatFloat(v, 'e', 4, 64)
	case "":
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + q.Unit
}

// Generate builds the questions for b. Options are shuffled with rng.
func Generate(b remote.CatalogBody, rng *rand.Rand) []Question {
	name := b.EnglishName
	moons := float64(b.MoonCount())
	fewer := moons - 1
	if fewer < 0 {
		fewer = moons + 2
	}

	qs := []Question{
		newQuestion(fmt.Sprintf("What is the diameter of %s in km?", name), "km", b.Diameter(), 1000, -1000),
		newQuestion(fmt.Sprintf("What is the mass of %s in kg?", name), "kg", b.MassKg(), 1e24, -1e24),
		newQuestion(fmt.Sprintf("What is the gravity on %s in m/s²?", name), "m/s²", b.Gravity, 2, -2),
		newQuestion(fmt.Sprintf("What is the distance of %s from the Sun in km?", name), "km", b.SemimajorAxis, 1e6, -1e6),
		{
			Text:    fmt.Sprintf("How many moons does %s have?", name),
			Answer:  moons,
			Options: [OptionCount]float64{moons, moons + 1, fewer},
		},
	}
	for i := range qs {
		shuffle(&qs[i].Options, rng)
	}
	return qs
}

func newQuestion(text, unit string, answer, up, down float64) Question {
	return Question{
		Text:    text,
		Answer:  answer,
		Options: [OptionCount]float64{answer, answer + up, answer + down},
		Unit:    unit,
	}
}

// shuffle is a Fisher-Yates pass over the options.
func shuffle(opts *[OptionCount]float64, rng *rand.Rand) {
	for i := len(opts) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
}

// Game walks through the questions one answer at a time. Each correct
// answer earns a coin.
type Game struct {
	Body      string
	Questions []Question
	Index     int
	Earned    int
}

func NewGame(b remote.CatalogBody, rng *rand.Rand) *Game {
	return &Game{Body: b.EnglishName, Questions: Generate(b, rng)}
}

func (g *Game) Finished() bool { return g.Index >= len(g.Questions) }

func (g *Game) Current() (Question, bool) {
	if g.Finished() {
		return Question{}, false
	}
	return g.Questions[g.Index], true
}

// Answer picks option i of the current question and moves on.
func (g *Game) Answer(i int) (correct, done bool, err error) {
	if g.Finished() {
		return false, true, ErrQuizFinished
	}
	q := g.Questions[g.Index]
	if i < 0 || i >= OptionCount {
		return false, false, fmt.Errorf("quiz: option %d out of range", i)
	}
	correct = q.Options[i] == q.Answer
	if correct {
		g.Earned++
	}
	g.Index++
	return correct, g.Finished(), nil
}
