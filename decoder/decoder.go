// Package decoder holds the PNG decode implementations under comparison.
//
// Every implementation takes the complete encoded file and returns an owned
// 8-bit non-premultiplied RGBA buffer. Callers must Release each result, even
// one returned together with an error; Release on a nil result is a no-op.
package decoder

import (
	"errors"
	"image"
	"image/draw"
)

var (
	ErrNotPNG    = errors.New("not a PNG file")
	ErrBadHeader = errors.New("bad IHDR chunk")
	ErrTooLarge  = errors.New("image exceeds the pixel budget")
)

// Decoder decodes a whole PNG file held in memory.
type Decoder interface {
	Name() string
	Decode(data []byte) (*Result, error)
}

// Version pairs the version an implementation was built against with the
// version found at run time.
type Version struct {
	Compiled string
	Runtime  string
}

// Versioned is implemented by decoders that can report their version.
type Versioned interface {
	Version() Version
}

// Result is the transient output of one Decode call.
type Result struct {
	// Pix is RGBA8 pixel data with a stride of 4*Width. It is nil for
	// buffers owned by foreign code.
	Pix           []byte
	Width, Height int
	// Header is filled only by decoders that parse IHDR separately.
	Header *Header

	release func()
}

// ForeignResult wraps a buffer owned by code outside the Go heap. release is
// called exactly once by Release.
func ForeignResult(width, height int, release func()) *Result {
	return &Result{Width: width, Height: height, release: release}
}

func newResult(img *image.NRGBA, header *Header) *Result {
	return &Result{
		Pix:    img.Pix,
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		Header: header,
	}
}

// Image views Pix as an *image.NRGBA, or returns nil when the buffer is not
// addressable from Go.
func (r *Result) Image() *image.NRGBA {
	if r == nil || r.Pix == nil {
		return nil
	}
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: 4 * r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Release drops the pixel buffer. It is safe to call on a nil Result and more
// than once.
func (r *Result) Release() {
	if r == nil {
		return
	}
	if r.release != nil {
		r.release()
		r.release = nil
	}
	r.Pix = nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
