package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type CMEAnalysis struct {
	Time            string  `json:"time21_5"`
	Speed           float64 `json:"speed"`
	Type            string  `json:"type"`
	IsEarthDirected bool    `json:"isEarthDirected"`
	IsMostAccurate  bool    `json:"isMostAccurate"`
}

// CMEEvent is one coronal mass ejection from the DONKI feed.
type CMEEvent struct {
	ActivityID string        `json:"activityID"`
	StartTime  string        `json:"startTime"`
	Note       string        `json:"note"`
	Analyses   []CMEAnalysis `json:"cmeAnalyses"`
}

// Summary renders the event the way the news panel shows it.
func (e CMEEvent) Summary() string {
	a := e.Analyses[0]
	earth := "No"
	if a.IsEarthDirected {
		earth = "Yes"
	}
	note := strings.TrimSpace(e.Note)
	if note == "" {
		note = "No additional information"
	}
	return fmt.Sprintf("Event Time: %s\nSpeed: %g km/s\nIs Earth Directed: %s\nNote: %s", a.Time, a.Speed, earth, note)
}

type NewsClient struct {
	base
	url string
	key string
}

func NewNewsClient(endpoint, key string, opts Options) *NewsClient {
	return &NewsClient{base: newBase("news", opts), url: endpoint, key: key}
}

// Latest returns the first event of the feed. The first event must carry at
// least one analysis.
func (c *NewsClient) Latest(ctx context.Context) (CMEEvent, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return CMEEvent{}, err
	}
	q := u.Query()
	if c.key != "" {
		q.Set("api_key", c.key)
	}
	u.RawQuery = q.Encode()

	var events []CMEEvent
	if err := c.getJSON(ctx, u.String(), nil, &events); err != nil {
		return CMEEvent{}, err
	}
	if len(events) == 0 {
		return CMEEvent{}, ErrNoEvents
	}
	if len(events[0].Analyses) == 0 {
		return CMEEvent{}, fmt.Errorf("%w: event %s has no analyses", ErrMalformed, events[0].ActivityID)
	}
	return events[0], nil
}
