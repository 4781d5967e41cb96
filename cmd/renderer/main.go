// renderer draws a lit sphere scene into a PPM image.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"phongtracer/affinetransform"
	"phongtracer/canvas"
	"phongtracer/output"
	"phongtracer/rendermetrics"
	"phongtracer/rgb"
	"phongtracer/scene"
	"phongtracer/scenepack"

	"cloud.google.com/go/profiler"
	cloudtrace "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"github.com/golang/glog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/time/rate"
)

var (
	sceneFile    = flag.String("scene", "", "YAML scene file.  If empty, a built-in scene is rendered.")
	outputFile   = flag.String("output", "output.ppm", "Where to write the PPM image.  Local path or gs://bucket/object.")
	rawOutput    = flag.String("raw-output", "", "Optional destination for the unclamped raw canvas.")
	outputWidth  = flag.Int("width", 0, "Output image columns.  Overrides the scene file.")
	outputHeight = flag.Int("height", 0, "Output image rows.  Overrides the scene file.")
	workers      = flag.Int("workers", runtime.NumCPU(), "Number of chunks rendered in parallel")
	rowsPerChunk = flag.Int("rows-per-chunk", 4, "Canvas rows per unit of work")
	progressRate = flag.Duration("progress-interval", 2*time.Second, "Minimum time between progress log lines")

	cpuprofile = flag.String("cpu-profile", "", "write cpu profile to `file`")

	enableProfiling      = flag.Bool("enable-profiling", false, "")
	enableMetrics        = flag.Bool("enable-metrics", false, "")
	monitoring           = flag.Bool("monitoring", false, "Enable trace export?")
	monitoringProject    = flag.String("monitoring-project", "", "Override project used for monitoring integration.  If not specified, the project associated with Application Default Credentials is used.")
	monitoringTraceRatio = flag.Float64("monitoring-trace-ratio", 1.0, "What ratio of traces should be exported?")
)

func main() {
	flag.Parse()

	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	glog.Infof("flags:")
	glog.Infof("scene: %q", *sceneFile)
	glog.Infof("output: %q", *outputFile)
	glog.Infof("raw-output: %q", *rawOutput)
	glog.Infof("width: %d height: %d", *outputWidth, *outputHeight)
	glog.Infof("workers: %d rows-per-chunk: %d", *workers, *rowsPerChunk)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatalf("Could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatalf("Could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *enableProfiling {
		if err := profiler.Start(profiler.Config{
			Service:        "phongtracer-renderer",
			ServiceVersion: "0.0.1",
			ProjectID:      *monitoringProject,
		}); err != nil {
			glog.Fatalf("Error initializing profiler: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *monitoring {
		traceOpts := []cloudtrace.Option{}
		if *monitoringProject != "" {
			traceOpts = append(traceOpts, cloudtrace.WithProjectID(*monitoringProject))
		}

		_, traceShutdown, err := cloudtrace.InstallNewPipeline(traceOpts, sdktrace.WithSampler(sdktrace.TraceIDRatioBased(*monitoringTraceRatio)))
		if err != nil {
			glog.Fatalf("Failed to install Cloud Trace OpenTelemetry trace pipeline: %v", err)
		}
		defer traceShutdown()
	}

	recorder := rendermetrics.New()
	if *enableMetrics {
		if err := recorder.RegisterMetrics(); err != nil {
			glog.Fatalf("Error registering metrics: %v", err)
		}

		exporter, err := stackdriver.NewExporter(stackdriver.Options{
			ProjectID:         *monitoringProject,
			MetricPrefix:      "phongtracer",
			ReportingInterval: 60 * time.Second,
		})
		if err != nil {
			glog.Fatalf("Error initializing metrics: %v", err)
		}
		exporter.StartMetricsExporter()
		defer exporter.Flush()
		defer exporter.StopMetricsExporter()
	}

	cfg := &config{
		sceneFile:    *sceneFile,
		outputFile:   *outputFile,
		rawOutput:    *rawOutput,
		width:        *outputWidth,
		height:       *outputHeight,
		workers:      *workers,
		rowsPerChunk: *rowsPerChunk,
		progressRate: *progressRate,
		recorder:     recorder,
	}
	if err := do(ctx, cfg); err != nil {
		glog.Errorf("Error: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

type config struct {
	sceneFile  string
	outputFile string
	rawOutput  string

	width, height int

	workers      int
	rowsPerChunk int
	progressRate time.Duration

	recorder *rendermetrics.Recorder
}

func do(ctx context.Context, cfg *config) error {
	var loaded *scenepack.Loaded
	if cfg.sceneFile != "" {
		var err error
		loaded, err = scenepack.LoadScene(ctx, cfg.sceneFile)
		if err != nil {
			return fmt.Errorf("while loading scene: %w", err)
		}
	} else {
		var err error
		loaded, err = builtinScene()
		if err != nil {
			return fmt.Errorf("while building built-in scene: %w", err)
		}
	}

	width, height := loaded.Width, loaded.Height
	if cfg.width > 0 {
		width = cfg.width
	}
	if cfg.height > 0 {
		height = cfg.height
	}

	glog.Infof("Rendering %q at %dx%d with %d shapes", loaded.World.Name, width, height, len(loaded.World.Shapes()))

	c := canvas.New(width, height)

	limiter := rate.NewLimiter(rate.Every(cfg.progressRate), 1)
	progress := func(done, total int) {
		if done == total || limiter.Allow() {
			glog.Infof("Rendered %d/%d rows (%d%%)", done, total, 100*done/total)
		}
	}

	start := time.Now()
	err := scene.RenderScene(ctx, loaded.World, loaded.Camera, c, progress,
		scene.WithWorkers(cfg.workers),
		scene.WithRowsPerChunk(cfg.rowsPerChunk),
		scene.WithMetrics(cfg.recorder),
	)
	if err != nil {
		return fmt.Errorf("while rendering: %w", err)
	}
	glog.Infof("Rendered in %v", time.Since(start))

	if err := output.WriteFile(ctx, cfg.outputFile, c.WritePPM); err != nil {
		return fmt.Errorf("while writing image: %w", err)
	}
	glog.Infof("Wrote %s", cfg.outputFile)

	if cfg.rawOutput != "" {
		if err := output.WriteFile(ctx, cfg.rawOutput, c.WriteRaw); err != nil {
			return fmt.Errorf("while writing raw canvas: %w", err)
		}
		glog.Infof("Wrote %s", cfg.rawOutput)
	}

	return nil
}

// builtinScene is a purple sphere squashed and tilted in front of the camera.
func builtinScene() (*scenepack.Loaded, error) {
	s := &scenepack.Scene{
		Name:   "builtin",
		Width:  256,
		Height: 256,
		Light: scenepack.Light{
			Position:  [3]float64{-10, 10, -10},
			Intensity: [3]float64{1, 1, 1},
		},
		Camera: scenepack.Camera{
			Eye:      [3]float64{0, 0, -5},
			WallZ:    10,
			WallSize: 7,
		},
	}

	loaded, err := s.Build()
	if err != nil {
		return nil, err
	}

	sphere := loaded.World.NewSphere()
	sphere.Material.Color = rgb.New(1, 0.2, 1)
	if err := sphere.SetTransform(affinetransform.Chain(
		affinetransform.Scale(1, 0.5, 1),
		affinetransform.RotateZ(0.5),
	)); err != nil {
		return nil, err
	}

	return loaded, nil
}
