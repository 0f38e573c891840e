package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/chartstack/pkg/anim"
	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
	chartio "github.com/matzehuels/chartstack/pkg/io"
	"github.com/matzehuels/chartstack/pkg/observability"
)

// AnimationResult contains the outputs of an animated pipeline run.
type AnimationResult struct {
	// Document is the decoded chart document.
	Document *chartio.Document

	// Timeline spans the document's keyframe states.
	Timeline *anim.Timeline

	// Frames holds the rendered artifacts of every frame in order,
	// keyed by format.
	Frames []map[string][]byte

	// Stats aggregates timing across all frames.
	Stats Stats
}

// ExecuteAnimation runs the animated decode → tween → layout → render
// pipeline, rendering every timeline frame. The document must carry at
// least one keyframe beyond its base state.
func (r *Runner) ExecuteAnimation(ctx context.Context, opts Options) (*AnimationResult, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForAnimation(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	decodeStart := time.Now()
	doc, err := r.Decode(ctx, opts)
	if err != nil {
		return nil, err
	}

	timeline, cfg, err := BuildTimeline(doc, opts)
	if err != nil {
		return nil, err
	}
	if timeline == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"animation needs a document with keyframes")
	}

	base := applyOverrides(doc.Props, opts)

	result := &AnimationResult{
		Document: doc,
		Timeline: timeline,
	}
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.DatasetCount = len(base.Data)
	result.Stats.PointCount = countPoints(base)

	total := timeline.FrameCount()
	r.Logger.Info("animating document",
		"document", documentName(opts),
		"states", len(doc.States()),
		"frames", total,
		"easing", cfg.Easing)

	hooks := observability.Animation()
	hooks.OnTweenStart(ctx, cfg.Easing, total)
	tweenStart := time.Now()
	var runErr error
	defer func() {
		hooks.OnTweenComplete(ctx, total, time.Since(tweenStart), runErr)
	}()

	result.Frames = make([]map[string][]byte, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			return nil, err
		}
		hooks.OnFrame(ctx, i, frameProgress(i, total))

		layoutStart := time.Now()
		g, err := GenerateGeometry(timeline.Frame(i), opts)
		if err != nil {
			runErr = err
			return nil, err
		}
		result.Stats.LayoutTime += time.Since(layoutStart)
		result.Stats.BarCount = len(g.Bars)

		renderStart := time.Now()
		artifacts, _, err := r.renderWithCache(ctx, g, opts)
		if err != nil {
			runErr = err
			return nil, err
		}
		result.Stats.RenderTime += time.Since(renderStart)
		result.Frames = append(result.Frames, artifacts)
	}

	r.Logger.Info("rendered animation",
		"frames", len(result.Frames),
		"formats", opts.Formats,
		"duration", result.Stats.LayoutTime+result.Stats.RenderTime)

	return result, nil
}

// BuildTimeline expands an already decoded document into its keyframe
// timeline with animation overrides applied, plus the resolved animation
// config. Documents without keyframes yield a nil timeline.
func BuildTimeline(doc *chartio.Document, opts Options) (*anim.Timeline, chart.Animation, error) {
	base := applyOverrides(doc.Props, opts)
	cfg := animationConfig(base)

	states := doc.States()
	if len(states) < 2 {
		return nil, cfg, nil
	}
	timeline, err := anim.NewTimeline(states, base.Animate)
	if err != nil {
		return nil, cfg, err
	}
	return timeline, cfg, nil
}

// animationConfig resolves the effective animation config of a prop state,
// mirroring the defaults the tween itself applies.
func animationConfig(p chart.Props) chart.Animation {
	cfg := chart.Animation{}
	if p.Animate != nil {
		cfg = *p.Animate
	}
	if cfg.Easing == "" {
		cfg.Easing = anim.DefaultEasing
	}
	if cfg.Frames <= 0 {
		cfg.Frames = anim.DefaultFrames
	}
	if cfg.Duration <= 0 {
		cfg.Duration = anim.DefaultDuration
	}
	return cfg
}

// frameProgress maps a global frame index onto [0, 1].
func frameProgress(i, total int) float64 {
	if total <= 1 {
		return 1
	}
	return float64(i) / float64(total-1)
}
