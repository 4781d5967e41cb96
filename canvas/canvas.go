// Package canvas holds rendered images and serializes them.
package canvas

import (
	"bufio"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"phongtracer/rgb"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrBadFormat is returned when reading a raw canvas that was not written by
// WriteRaw.
var ErrBadFormat = errors.New("bad raw canvas format")

const (
	ppmMaxValue   = 255
	ppmLineLength = 70

	rawLayoutVersion = 1

	// Largest canvas ReadRaw will allocate.
	maxRawPixels = 1 << 28
)

// Canvas is a Width by Height grid of colors, stored row by row.  A new canvas
// is black.
type Canvas struct {
	Width, Height int
	Pixels        []rgb.T
}

func New(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]rgb.T, width*height),
	}
}

func (c *Canvas) inBounds(x, y int) bool {
	return 0 <= x && x < c.Width && 0 <= y && y < c.Height
}

// WritePixel sets the pixel at column x, row y.  Writes outside the canvas are
// ignored.
func (c *Canvas) WritePixel(x, y int, col rgb.T) {
	if !c.inBounds(x, y) {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// PixelAt returns the pixel at column x, row y, or black outside the canvas.
func (c *Canvas) PixelAt(x, y int) rgb.T {
	if !c.inBounds(x, y) {
		return rgb.Black()
	}
	return c.Pixels[y*c.Width+x]
}

// WritePPM writes the canvas as a plain (P3) PPM.  Components are clamped to
// [0, 255] and no line is longer than 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", c.Width, c.Height, ppmMaxValue); err != nil {
		return fmt.Errorf("while writing header: %w", err)
	}

	for y := 0; y < c.Height; y++ {
		line := make([]byte, 0, ppmLineLength)
		for x := 0; x < c.Width; x++ {
			for _, v := range rgb.Quantize(c.Pixels[y*c.Width+x], ppmMaxValue) {
				tok := strconv.Itoa(v)
				if len(line) > 0 && len(line)+1+len(tok) > ppmLineLength {
					line = append(line, '\n')
					if _, err := bw.Write(line); err != nil {
						return fmt.Errorf("while writing row %d: %w", y, err)
					}
					line = line[:0]
				}
				if len(line) > 0 {
					line = append(line, ' ')
				}
				line = append(line, tok...)
			}
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("while writing row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while flushing: %w", err)
	}
	return nil
}

// WriteRaw writes the unclamped canvas: a length-prefixed protobuf header
// followed by zlib-compressed little-endian float64 components.
func (c *Canvas) WriteRaw(w io.Writer) error {
	hdr, err := structpb.NewStruct(map[string]interface{}{
		"width":          c.Width,
		"height":         c.Height,
		"layout_version": rawLayoutVersion,
	})
	if err != nil {
		return fmt.Errorf("while building header: %w", err)
	}

	hdrBytes, err := proto.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("while marshaling header: %w", err)
	}

	headerLengthBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(headerLengthBytes, uint64(len(hdrBytes)))
	if _, err := w.Write(headerLengthBytes); err != nil {
		return fmt.Errorf("while writing header length: %w", err)
	}

	if _, err := w.Write(hdrBytes); err != nil {
		return fmt.Errorf("while writing header: %w", err)
	}

	zipWriter := zlib.NewWriter(w)

	if err := binary.Write(zipWriter, binary.LittleEndian, c.Pixels); err != nil {
		return fmt.Errorf("while writing pixels: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("while closing zip writer: %w", err)
	}

	return nil
}

func headerInt(hdr *structpb.Struct, name string) (int, error) {
	v, ok := hdr.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: header is missing %q", ErrBadFormat, name)
	}
	n := v.GetNumberValue()
	if n < 0 || n > maxRawPixels || n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: header field %q has bad value %v", ErrBadFormat, name, n)
	}
	return int(n), nil
}

// ReadRaw reads a canvas written by WriteRaw.
func ReadRaw(in io.Reader) (*Canvas, error) {
	var headerLength uint64
	if err := binary.Read(in, binary.LittleEndian, &headerLength); err != nil {
		return nil, fmt.Errorf("while reading header length: %w", err)
	}
	if headerLength > 1<<16 {
		return nil, fmt.Errorf("%w: header length %d", ErrBadFormat, headerLength)
	}

	headerBytes := make([]byte, int(headerLength))
	if _, err := io.ReadFull(in, headerBytes); err != nil {
		return nil, fmt.Errorf("while reading header bytes: %w", err)
	}

	hdr := &structpb.Struct{}
	if err := proto.Unmarshal(headerBytes, hdr); err != nil {
		return nil, fmt.Errorf("while unmarshaling header: %w", err)
	}

	version, err := headerInt(hdr, "layout_version")
	if err != nil {
		return nil, err
	}
	if version != rawLayoutVersion {
		return nil, fmt.Errorf("%w: layout version %d", ErrBadFormat, version)
	}
	width, err := headerInt(hdr, "width")
	if err != nil {
		return nil, err
	}
	height, err := headerInt(hdr, "height")
	if err != nil {
		return nil, err
	}

	if width > 0 && height > maxRawPixels/width {
		return nil, fmt.Errorf("%w: canvas %dx%d is too large", ErrBadFormat, width, height)
	}

	c := New(width, height)

	zipReader, err := zlib.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("while opening zip reader: %w", err)
	}
	defer zipReader.Close()

	if err := binary.Read(zipReader, binary.LittleEndian, c.Pixels); err != nil {
		return nil, fmt.Errorf("while reading pixels: %w", err)
	}

	return c, nil
}

func ReadRawFromFile(name string) (*Canvas, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("while opening file: %w", err)
	}
	defer f.Close()

	return ReadRaw(f)
}
