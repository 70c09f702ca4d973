package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/orrery/internal/config"
)

// Run steps the session headless for the given number of frames. The
// observer sees every frame and can stop the run early by returning false.
func (s *Session) Run(ctx context.Context, frames int, dt time.Duration, observer func(FrameStats) bool) error {
	if frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", frames)
	}
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stats := s.Frame(dt)
		if observer != nil && !observer(stats) {
			return nil
		}
	}
	return nil
}

// Trace is the orbital angle of one body sampled after every frame.
type Trace struct {
	Body   string
	Speed  float64
	Angles []float64
}

// Ensemble runs one headless session per speed multiplier in parallel.
type Ensemble struct {
	cfg    *config.Config
	speeds []float64
	opts   []Option
}

func NewEnsemble(cfg *config.Config, speeds []float64, opts ...Option) *Ensemble {
	return &Ensemble{cfg: cfg, speeds: speeds, opts: opts}
}

// Trace records the named body's orbital angle for each speed. Results come
// back in the order of the speeds.
func (e *Ensemble) Trace(ctx context.Context, body string, frames int, dt time.Duration) ([]Trace, error) {
	results := make([]Trace, len(e.speeds))
	errs := make([]error, len(e.speeds))

	var wg sync.WaitGroup
	for i, speed := range e.speeds {
		wg.Add(1)
		go func(idx int, speed float64) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Camera.Position = append([]float64(nil), e.cfg.Camera.Position...)
			results[idx], errs[idx] = traceOne(ctx, &cfgCopy, body, speed, frames, dt, e.opts)
		}(i, speed)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func traceOne(ctx context.Context, cfg *config.Config, body string, speed float64, frames int, dt time.Duration, opts []Option) (Trace, error) {
	opts = append(opts[:len(opts):len(opts)], WithDecorations(nil, 0))
	s, err := NewSession(cfg, opts...)
	if err != nil {
		return Trace{}, err
	}
	defer s.Close()

	idx, err := indexOf(s.Scene, body)
	if err != nil {
		return Trace{}, err
	}
	tr := Trace{Body: s.Scene.Bodies[idx].Name, Speed: s.SetSpeed(speed), Angles: make([]float64, 0, frames)}
	err = s.Run(ctx, frames, dt, func(FrameStats) bool {
		tr.Angles = append(tr.Angles, s.Scene.Nodes[idx].PivotAngle)
		return true
	})
	return tr, err
}
