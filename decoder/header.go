package decoder

import (
	"encoding/binary"
	"fmt"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

// ColorType is the IHDR color type.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	Truecolor      ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	TruecolorAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "grayscale"
	case Truecolor:
		return "truecolor"
	case Indexed:
		return "indexed"
	case GrayscaleAlpha:
		return "grayscale+alpha"
	case TruecolorAlpha:
		return "truecolor+alpha"
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

// Header holds the IHDR fields.
type Header struct {
	Width      uint32
	Height     uint32
	BitDepth   uint8
	ColorType  ColorType
	Interlaced bool
}

// ParseHeader reads the signature and the IHDR chunk, which must come first.
// It does not verify the chunk CRC; the full decode does.
func ParseHeader(data []byte) (Header, error) {
	const ihdrLength = 13
	if len(data) < len(pngSignature) || string(data[:len(pngSignature)]) != pngSignature {
		return Header{}, ErrNotPNG
	}
	chunk := data[len(pngSignature):]
	if len(chunk) < 8+ihdrLength {
		return Header{}, fmt.Errorf("%w: truncated", ErrBadHeader)
	}
	if string(chunk[4:8]) != "IHDR" {
		return Header{}, fmt.Errorf("%w: first chunk is %q", ErrBadHeader, chunk[4:8])
	}
	if n := binary.BigEndian.Uint32(chunk[:4]); n != ihdrLength {
		return Header{}, fmt.Errorf("%w: length %d", ErrBadHeader, n)
	}

	ihdr := chunk[8 : 8+ihdrLength]
	h := Header{
		Width:      binary.BigEndian.Uint32(ihdr[0:4]),
		Height:     binary.BigEndian.Uint32(ihdr[4:8]),
		BitDepth:   ihdr[8],
		ColorType:  ColorType(ihdr[9]),
		Interlaced: ihdr[12] == 1,
	}
	if h.Width == 0 || h.Height == 0 || h.Width > 0x7fffffff || h.Height > 0x7fffffff {
		return Header{}, fmt.Errorf("%w: dimensions %dx%d", ErrBadHeader, h.Width, h.Height)
	}
	if !validDepth(h.ColorType, h.BitDepth) {
		return Header{}, fmt.Errorf("%w: bit depth %d with color type %d", ErrBadHeader, h.BitDepth, uint8(h.ColorType))
	}
	return h, nil
}

func validDepth(c ColorType, depth uint8) bool {
	switch c {
	case Grayscale:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8 || depth == 16
	case Indexed:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8
	case Truecolor, GrayscaleAlpha, TruecolorAlpha:
		return depth == 8 || depth == 16
	}
	return false
}
