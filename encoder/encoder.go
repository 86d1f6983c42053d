// Package encoder holds the PNG encode implementations timed by the encode
// benchmark.
package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/disintegration/imaging"
)

// Encoder encodes an image to PNG.
type Encoder interface {
	Name() string
	Encode(img image.Image) ([]byte, error)
}

// Builtin returns the in-tree encoders in reporting order.
func Builtin() []Encoder {
	pool := &bufferPool{}
	return []Encoder{
		NewPNG("png-default", png.DefaultCompression, pool),
		NewPNG("png-speed", png.BestSpeed, pool),
		NewPNG("png-best", png.BestCompression, pool),
		Imaging{},
	}
}

// PNG encodes with image/png at a fixed compression level.
type PNG struct {
	name string
	enc  *png.Encoder
}

// NewPNG returns a PNG encoder. pool may be nil.
func NewPNG(name string, level png.CompressionLevel, pool png.EncoderBufferPool) *PNG {
	return &PNG{
		name: name,
		enc:  &png.Encoder{CompressionLevel: level, BufferPool: pool},
	}
}

func (e *PNG) Name() string { return e.name }

func (e *PNG) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("could not encode the image: %w", err)
	}
	return buf.Bytes(), nil
}

// Imaging encodes with github.com/disintegration/imaging.
type Imaging struct{}

func (Imaging) Name() string { return "imaging" }

func (Imaging) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("could not encode the image: %w", err)
	}
	return buf.Bytes(), nil
}

// bufferPool lets consecutive runs reuse the encoder's zlib state.
type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *bufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}
