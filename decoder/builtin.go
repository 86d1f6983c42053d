package decoder

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Options tunes the built-in decoders.
type Options struct {
	// MaxPixels is the largest width*height the guarded decoder will allocate for.
	MaxPixels int64
}

// Builtin returns the in-tree decoders in reporting order: reference,
// streaming, single-file, portable, memory-safe.
func Builtin(opts Options) []Decoder {
	return []Decoder{
		Reference{},
		Streaming{},
		Imaging{},
		Registry{},
		Guarded{MaxPixels: opts.MaxPixels},
	}
}

// Reference decodes with the standard library decoder.
type Reference struct{}

func (Reference) Name() string { return "image/png" }

func (Reference) Version() Version { return stdlibVersion() }

func (Reference) Decode(data []byte) (*Result, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	return newResult(toNRGBA(img), nil), nil
}

// streamBufferSize is how many encoded bytes Streaming hands the decoder per read.
const streamBufferSize = 4096

// Streaming parses IHDR up front and then feeds the decoder through a small
// buffered stream instead of the whole file.
type Streaming struct{}

func (Streaming) Name() string { return "png-stream" }

func (Streaming) Version() Version { return stdlibVersion() }

func (Streaming) Decode(data []byte) (*Result, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("could not read the header: %w", err)
	}
	r := bufio.NewReaderSize(bytes.NewReader(data), streamBufferSize)
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	return newResult(toNRGBA(img), &header), nil
}

// Imaging decodes with github.com/disintegration/imaging.
type Imaging struct{}

func (Imaging) Name() string { return "imaging" }

func (Imaging) Version() Version { return moduleVersion(imagingModule) }

func (Imaging) Decode(data []byte) (*Result, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	return newResult(imaging.Clone(img), nil), nil
}

// Registry sniffs the format through the image package registry and converts
// with golang.org/x/image/draw.
type Registry struct{}

func (Registry) Name() string { return "image-registry" }

func (Registry) Version() Version { return moduleVersion(xImageModule) }

func (Registry) Decode(data []byte) (*Result, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	if format != "png" {
		return nil, fmt.Errorf("could not decode: %w (sniffed %s)", ErrNotPNG, format)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return newResult(dst, nil), nil
}

// Guarded checks the declared dimensions against a pixel budget before
// allocating anything for the image.
type Guarded struct {
	MaxPixels int64
}

func (Guarded) Name() string { return "png-guarded" }

func (Guarded) Version() Version { return stdlibVersion() }

func (g Guarded) Decode(data []byte) (*Result, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not read the header: %w", err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); g.MaxPixels > 0 && pixels > g.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d is over %d pixels", ErrTooLarge, cfg.Width, cfg.Height, g.MaxPixels)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	return newResult(toNRGBA(img), nil), nil
}
