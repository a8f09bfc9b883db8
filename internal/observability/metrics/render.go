// Package metrics contains shared helpers for emitting render pipeline
// metrics with consistent names and tags.
package metrics

import (
	"time"

	obserrors "github.com/scenesmith/scenesmith/internal/observability/errors"
	"github.com/scenesmith/scenesmith/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// RenderMetric captures details about a finished render job for metric emission.
type RenderMetric struct {
	Mode     string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitRenderLifecycle emits standardised render lifecycle metrics.
func EmitRenderLifecycle(sink statsd.Sink, in RenderMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"mode":   in.Mode,
		"result": in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("render.job", 1, tags)

	if in.Duration > 0 {
		sink.Timing("render.duration", in.Duration, CloneTags(tags))
	}
}

// SynthesisMetric captures details about one code synthesis attempt.
type SynthesisMetric struct {
	CacheHit bool
	Result   string
	Duration time.Duration
	Err      error
}

// EmitSynthesis emits metrics for a generative API round trip.
func EmitSynthesis(sink statsd.Sink, in SynthesisMetric) {
	if sink == nil {
		return
	}

	cache := "miss"
	if in.CacheHit {
		cache = "hit"
	}
	tags := map[string]string{
		"cache":  cache,
		"result": in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("synthesis.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("synthesis.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
