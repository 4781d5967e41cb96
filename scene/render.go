package scene

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"phongtracer/camera"
	"phongtracer/canvas"
	"phongtracer/rendermetrics"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type RenderOptions struct {
	// Maximum number of chunks rendered at once.
	Workers int

	// Number of canvas rows in one unit of work.
	RowsPerChunk int

	// Optional.
	Metrics *rendermetrics.Recorder
}

type RenderOpt func(*RenderOptions)

func WithWorkers(n int) RenderOpt {
	return func(o *RenderOptions) {
		o.Workers = n
	}
}

func WithRowsPerChunk(n int) RenderOpt {
	return func(o *RenderOptions) {
		o.RowsPerChunk = n
	}
}

func WithMetrics(r *rendermetrics.Recorder) RenderOpt {
	return func(o *RenderOptions) {
		o.Metrics = r
	}
}

// ProgressFunction is called, never concurrently, each time a chunk finishes.
type ProgressFunction func(rowsDone, totalRows int)

type chunk struct {
	rowSrc, rowLim int
}

// RenderScene shades every pixel of c with the ray cam generates for it.  Rows
// are split into chunks that are rendered in parallel; the result does not
// depend on the number of workers.  Rendering stops between rows once ctx is
// done.
func RenderScene(ctx context.Context, w *World, cam camera.Camera, c *canvas.Canvas, progress ProgressFunction, opts ...RenderOpt) error {
	tracer := otel.Tracer("phongtracer/scene")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "RenderScene")
	defer span.End()

	options := &RenderOptions{
		Workers:      runtime.NumCPU(),
		RowsPerChunk: 1,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	if options.RowsPerChunk < 1 {
		options.RowsPerChunk = 1
	}

	span.SetAttributes(
		attribute.Int64("width", int64(c.Width)),
		attribute.Int64("height", int64(c.Height)),
		attribute.Int64("workers", int64(options.Workers)),
		attribute.Int64("shapes", int64(len(w.shapes))),
	)

	if err := render(ctx, w, cam, c, progress, options); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func render(ctx context.Context, w *World, cam camera.Camera, c *canvas.Canvas, progress ProgressFunction, options *RenderOptions) error {
	rowsDone := 0

	// progressMutex locks rowsDone and serializes calls to progress.
	progressMutex := sync.Mutex{}

	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(options.Workers))

	for rowSrc := 0; rowSrc < c.Height; rowSrc += options.RowsPerChunk {
		ch := chunk{rowSrc: rowSrc, rowLim: rowSrc + options.RowsPerChunk}
		if ch.rowLim > c.Height {
			ch.rowLim = c.Height
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			// A failed worker cancels ctx; its error is the one to report.
			if err := eg.Wait(); err != nil {
				return fmt.Errorf("while waiting for render workers: %w", err)
			}
			return fmt.Errorf("while acquiring worker semaphore: %w", err)
		}

		eg.Go(func() error {
			defer sem.Release(1)

			start := time.Now()
			hits, err := renderChunk(ctx, w, cam, c, ch)
			if err != nil {
				return fmt.Errorf("while rendering rows [%d, %d): %w", ch.rowSrc, ch.rowLim, err)
			}

			pixels := int64((ch.rowLim - ch.rowSrc) * c.Width)
			options.Metrics.RecordChunk(ctx, w.Name, pixels, hits, time.Since(start))
			glog.V(1).Infof("Rendered rows [%d, %d) with %d/%d hits", ch.rowSrc, ch.rowLim, hits, pixels)

			progressMutex.Lock()
			defer progressMutex.Unlock()
			rowsDone += ch.rowLim - ch.rowSrc
			if progress != nil {
				progress(rowsDone, c.Height)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("while waiting for render workers: %w", err)
	}

	return nil
}

func renderChunk(ctx context.Context, w *World, cam camera.Camera, c *canvas.Canvas, ch chunk) (int64, error) {
	hits := int64(0)
	for cr := ch.rowSrc; cr < ch.rowLim; cr++ {
		if err := ctx.Err(); err != nil {
			return hits, err
		}
		for cc := 0; cc < c.Width; cc++ {
			col, hit := w.shade(cam.ImageToRay(cr, c.Height, cc, c.Width))
			if hit {
				hits++
			}
			c.WritePixel(cc, cr, col)
		}
	}
	return hits, nil
}
