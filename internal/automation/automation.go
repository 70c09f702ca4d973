package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/sim"
)

var ErrMissed = errors.New("automation: body not under the camera")

const frameDT = time.Second / 60

// Scenario is a scripted tour through the system.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single action followed by a number of frames. Unset fields
// leave the session alone.
type Step struct {
	Select    string  `yaml:"select"`
	Close     bool    `yaml:"close"`
	Back      bool    `yaml:"back"`
	Speed     float64 `yaml:"speed"`
	RealView  *bool   `yaml:"real_view"`
	ShowPaths *bool   `yaml:"show_paths"`
	Frames    int     `yaml:"frames"`
	Note      string  `yaml:"note"`
}

// StepResult is the session state after a step's frames have run.
type StepResult struct {
	Step     int
	Frame    uint64
	Speed    float64
	Selected string
	Camera   [3]float64
	Note     string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", path)
	}
	return &scenario, nil
}

// RunScenario executes all steps against the session.
func RunScenario(ctx context.Context, s *sim.Session, scenario *Scenario, log *zap.Logger) ([]StepResult, error) {
	log = logging.OrNop(log)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Debug("running step", zap.Int("step", i+1), zap.Int("of", len(scenario.Steps)))

		if err := apply(s, step); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := s.Run(ctx, step.Frames, frameDT, nil); err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		r := StepResult{
			Step:   i + 1,
			Frame:  s.Frames(),
			Speed:  s.Speed(),
			Camera: [3]float64(s.Camera.Position),
			Note:   step.Note,
		}
		if idx, ok := s.Selection.Selected(); ok {
			r.Selected = s.Scene.Bodies[idx].Name
		}
		results = append(results, r)
	}

	return results, nil
}

func apply(s *sim.Session, step Step) error {
	if step.Speed > 0 {
		s.SetSpeed(step.Speed)
	}
	if step.RealView != nil {
		s.Scene.SetRealView(*step.RealView)
	}
	if step.ShowPaths != nil {
		s.Scene.ShowPaths = *step.ShowPaths
	}
	switch {
	case step.Close:
		s.Selection.Close()
	case step.Back:
		s.Selection.GoBack()
	case step.Select != "":
		return selectBody(s, step.Select)
	}
	return nil
}

// selectBody aims the camera at the body and double clicks the centre of
// the viewport, going through the same pick path as the pointer. When a
// nearer body covers the target the camera swings around it first.
func selectBody(s *sim.Session, name string) error {
	idx, err := s.Index(name)
	if err != nil {
		return err
	}
	target := s.Scene.WorldPosition(idx)
	offset := s.Camera.Position.Sub(target)
	dist := math.Max(offset.Len(), clearance*s.Scene.BoundingRadius(idx))

	s.Camera.Target = target
	visible := false
	for _, off := range viewpoints(offset, dist) {
		s.Camera.Position = target.Add(off)
		if hit, ok := s.Picker.PickAt(0, 0); ok && hit.Index == idx {
			visible = true
			break
		}
	}
	s.Controls.Sync()
	if !visible {
		return fmt.Errorf("%w: %s", ErrMissed, name)
	}

	if !s.DoubleClick(float64(s.Camera.Width)/2, float64(s.Camera.Height)/2) {
		return fmt.Errorf("%w: %s", ErrMissed, name)
	}
	if got, ok := s.Selection.Selected(); !ok || got != idx {
		return fmt.Errorf("%w: %s", ErrMissed, name)
	}
	return nil
}

// clearance keeps a swung camera outside the target's bounding sphere.
const clearance = 4

// viewpoints lists camera offsets from the target to try in order: the
// current one, then a ring at 45 degrees above the orbital plane and a
// nearly overhead ring.
func viewpoints(current mgl64.Vec3, dist float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, 17)
	if current.Len() > 0 {
		out = append(out, current)
	}
	for _, polar := range []float64{math.Pi / 4, 0.2} {
		for k := 0; k < 8; k++ {
			az := float64(k) * math.Pi / 4
			out = append(out, mgl64.Vec3{
				dist * math.Sin(polar) * math.Sin(az),
				dist * math.Cos(polar),
				dist * math.Sin(polar) * math.Cos(az),
			})
		}
	}
	return out
}
