// Package rendermetrics records render throughput with OpenCensus.
package rendermetrics

import (
	"context"
	"fmt"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var sceneKey = tag.MustNewKey("scene")

type Recorder struct {
	pixelsShaded     *stats.Int64Measure
	pixelsShadedView *view.View

	primaryHits     *stats.Int64Measure
	primaryHitsView *view.View

	chunkLatency     *stats.Float64Measure
	chunkLatencyView *view.View
}

func New() *Recorder {
	r := &Recorder{}

	r.pixelsShaded = stats.Int64("phongtracer/pixels_shaded", "Pixels written to the canvas", stats.UnitDimensionless)
	r.pixelsShadedView = &view.View{
		Name:        "phongtracer/pixels_shaded",
		Description: "Total pixels written to the canvas",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     r.pixelsShaded,
		Aggregation: view.Sum(),
	}

	r.primaryHits = stats.Int64("phongtracer/primary_ray_hits", "Primary rays that hit a shape", stats.UnitDimensionless)
	r.primaryHitsView = &view.View{
		Name:        "phongtracer/primary_ray_hits",
		Description: "Total primary rays that hit a shape",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     r.primaryHits,
		Aggregation: view.Sum(),
	}

	r.chunkLatency = stats.Float64("phongtracer/chunk_latency", "Time to render one chunk of rows", stats.UnitMilliseconds)
	r.chunkLatencyView = &view.View{
		Name:        "phongtracer/chunk_latency",
		Description: "Distribution of chunk render times",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     r.chunkLatency,
		Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000, 10000),
	}

	return r
}

func (r *Recorder) Views() []*view.View {
	return []*view.View{r.pixelsShadedView, r.primaryHitsView, r.chunkLatencyView}
}

func (r *Recorder) RegisterMetrics() error {
	if err := view.Register(r.Views()...); err != nil {
		return fmt.Errorf("while registering render views: %w", err)
	}
	return nil
}

func (r *Recorder) UnregisterMetrics() {
	view.Unregister(r.Views()...)
}

// RecordChunk records one finished chunk.  A nil Recorder records nothing.
func (r *Recorder) RecordChunk(ctx context.Context, scene string, pixels, hits int64, elapsed time.Duration) {
	if r == nil {
		return
	}

	stats.RecordWithOptions(
		ctx,
		stats.WithTags(tag.Upsert(sceneKey, scene)),
		stats.WithMeasurements(
			r.pixelsShaded.M(pixels),
			r.primaryHits.M(hits),
			r.chunkLatency.M(float64(elapsed)/float64(time.Millisecond)),
		))
}
