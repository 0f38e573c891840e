package anim

import (
	"context"
	"time"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
	"github.com/matzehuels/chartstack/pkg/observability"
)

const (
	// DefaultDuration is the wall-clock length of a tween when the
	// animation config leaves it unset.
	DefaultDuration = time.Second

	// DefaultFrames is the frame count when the config leaves it unset.
	DefaultFrames = 30
)

// Tween produces interpolated prop states between two endpoints under an
// easing curve. Frames can be enumerated deterministically, or driven in
// real time with Run.
type Tween struct {
	interp func(t float64) chart.Props
	ease   EaseFunc
	easing string
	cfg    chart.Animation
}

// NewTween builds a tween from one prop state to another. A nil config
// selects all defaults; zero fields within a config do the same.
func NewTween(from, to chart.Props, cfg *chart.Animation) (*Tween, error) {
	var c chart.Animation
	if cfg != nil {
		c = *cfg
	}
	if c.Easing == "" {
		c.Easing = DefaultEasing
	}
	fn, err := ParseEasing(c.Easing)
	if err != nil {
		return nil, err
	}
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	return &Tween{
		interp: Interpolate(from, to),
		ease:   fn,
		easing: c.Easing,
		cfg:    c,
	}, nil
}

// At returns the interpolated props at progress t. Progress is clamped to
// [0, 1] before easing; the eased value may still overshoot for curves
// like back and elastic.
func (tw *Tween) At(t float64) chart.Props {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return tw.interp(tw.ease(t))
}

// FrameCount returns the number of frames a full enumeration emits.
func (tw *Tween) FrameCount() int {
	return tw.cfg.Frames
}

// Frame returns frame i of the deterministic enumeration. Frame 0 is the
// starting state and the final frame is the target state.
func (tw *Tween) Frame(i int) chart.Props {
	return tw.At(tw.progress(i))
}

// Frames enumerates every frame in order.
func (tw *Tween) Frames() []chart.Props {
	out := make([]chart.Props, tw.cfg.Frames)
	for i := range out {
		out[i] = tw.Frame(i)
	}
	return out
}

func (tw *Tween) progress(i int) float64 {
	n := tw.cfg.Frames
	if n <= 1 {
		return 1
	}
	return float64(i) / float64(n-1)
}

// Run drives the tween on a wall-clock schedule, emitting frames spaced
// evenly across the configured duration after any configured delay. The
// callback receives each frame in order; a callback error or context
// cancellation stops the run.
func (tw *Tween) Run(ctx context.Context, emit func(frame int, props chart.Props) error) error {
	hooks := observability.Animation()
	hooks.OnTweenStart(ctx, tw.easing, tw.cfg.Frames)
	start := time.Now()
	var err error
	defer func() {
		hooks.OnTweenComplete(ctx, tw.cfg.Frames, time.Since(start), err)
	}()

	if tw.cfg.Delay > 0 {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return err
		case <-time.After(tw.cfg.Delay):
		}
	}

	interval := tw.cfg.Duration / time.Duration(tw.cfg.Frames)
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; i < tw.cfg.Frames; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return err
			case <-ticker.C:
			}
		}
		hooks.OnFrame(ctx, i, tw.progress(i))
		if err = emit(i, tw.Frame(i)); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Timeline
// =============================================================================

// Timeline chains tweens across an ordered list of keyframe states. Each
// consecutive pair becomes one segment sharing the same animation config.
type Timeline struct {
	tweens []*Tween
}

// NewTimeline builds a timeline over at least two keyframe states.
func NewTimeline(states []chart.Props, cfg *chart.Animation) (*Timeline, error) {
	if len(states) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"timeline needs at least two keyframe states, got %d", len(states))
	}
	tl := &Timeline{tweens: make([]*Tween, 0, len(states)-1)}
	for i := 1; i < len(states); i++ {
		tw, err := NewTween(states[i-1], states[i], cfg)
		if err != nil {
			return nil, err
		}
		tl.tweens = append(tl.tweens, tw)
	}
	return tl, nil
}

// FrameCount sums the frames of every segment.
func (tl *Timeline) FrameCount() int {
	total := 0
	for _, tw := range tl.tweens {
		total += tw.FrameCount()
	}
	return total
}

// Frame maps a global frame index onto the owning segment. Indexes past
// the end return the final state.
func (tl *Timeline) Frame(i int) chart.Props {
	if i < 0 {
		i = 0
	}
	for _, tw := range tl.tweens {
		if i < tw.FrameCount() {
			return tw.Frame(i)
		}
		i -= tw.FrameCount()
	}
	last := tl.tweens[len(tl.tweens)-1]
	return last.Frame(last.FrameCount() - 1)
}

// Frames enumerates every frame of every segment in order.
func (tl *Timeline) Frames() []chart.Props {
	out := make([]chart.Props, 0, tl.FrameCount())
	for _, tw := range tl.tweens {
		out = append(out, tw.Frames()...)
	}
	return out
}

// Run drives every segment in order on the wall clock. Global frame
// indexes continue across segment boundaries.
func (tl *Timeline) Run(ctx context.Context, emit func(frame int, props chart.Props) error) error {
	offset := 0
	for _, tw := range tl.tweens {
		base := offset
		err := tw.Run(ctx, func(frame int, props chart.Props) error {
			return emit(base+frame, props)
		})
		if err != nil {
			return err
		}
		offset += tw.FrameCount()
	}
	return nil
}
