// Package output writes rendered images to local files or Cloud Storage.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	googleopt "google.golang.org/api/option"
)

const gcsScheme = "gs://"

// Destination is either a local path or a Cloud Storage object.
type Destination struct {
	Path string

	Bucket string
	Object string
}

func (d Destination) IsGCS() bool {
	return d.Bucket != ""
}

func (d Destination) String() string {
	if d.IsGCS() {
		return gcsScheme + d.Bucket + "/" + d.Object
	}
	return d.Path
}

// ParseDestination accepts a local path or gs://bucket/object.
func ParseDestination(dest string) (Destination, error) {
	if dest == "" {
		return Destination{}, fmt.Errorf("empty destination")
	}
	if !strings.HasPrefix(dest, gcsScheme) {
		return Destination{Path: dest}, nil
	}

	bucket, object, ok := strings.Cut(strings.TrimPrefix(dest, gcsScheme), "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return Destination{}, fmt.Errorf("bad Cloud Storage destination %q, want gs://bucket/object", dest)
	}
	return Destination{Bucket: bucket, Object: object}, nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".ppm":
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

func (w *gcsWriter) Close() error {
	defer w.client.Close()
	if err := w.Writer.Close(); err != nil {
		return fmt.Errorf("while closing object writer: %w", err)
	}
	return nil
}

// Open returns a writer for dest.  Nothing is visible at a Cloud Storage
// destination until the writer is closed successfully.
func Open(ctx context.Context, dest Destination, opts ...googleopt.ClientOption) (io.WriteCloser, error) {
	if !dest.IsGCS() {
		f, err := os.Create(dest.Path)
		if err != nil {
			return nil, fmt.Errorf("while creating output file: %w", err)
		}
		return f, nil
	}

	opts = append([]googleopt.ClientOption{googleopt.WithGRPCConnectionPool(1)}, opts...)
	gcs, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("while creating Cloud Storage client: %w", err)
	}

	w := gcs.Bucket(dest.Bucket).Object(dest.Object).NewWriter(ctx)
	w.ContentType = contentType(dest.Object)
	return &gcsWriter{Writer: w, client: gcs}, nil
}

// WriteFile opens dest, hands it to write, and closes it.
func WriteFile(ctx context.Context, dest string, write func(io.Writer) error, opts ...googleopt.ClientOption) error {
	tracer := otel.Tracer("phongtracer/output")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "WriteFile")
	defer span.End()

	span.SetAttributes(attribute.String("destination", dest))

	if err := writeFile(ctx, dest, write, opts...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func writeFile(ctx context.Context, dest string, write func(io.Writer) error, opts ...googleopt.ClientOption) error {
	d, err := ParseDestination(dest)
	if err != nil {
		return err
	}

	// Cancelling the context aborts an unfinished Cloud Storage upload.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := Open(ctx, d, opts...)
	if err != nil {
		return fmt.Errorf("while opening %v: %w", d, err)
	}

	if err := write(w); err != nil {
		cancel()
		w.Close()
		return fmt.Errorf("while writing %v: %w", d, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("while closing %v: %w", d, err)
	}
	return nil
}
