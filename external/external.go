// Package external loads a PNG decoder from a shared library at run time.
//
// The library must export
//
//	const char *get_name(void);
//	uint8_t *decode_png(const uint8_t *data, uint64_t size, uint32_t *w, uint32_t *h);
//
// decode_png returns a malloc'd pixel buffer or NULL on failure. Only these
// two symbols are required. The buffer is released with the C runtime's free,
// resolved from the process first and from the library second; when neither
// has one the buffer is left to the library.
package external

import (
	"errors"
	"fmt"

	"pngbench/decoder"
)

const (
	nameSymbol   = "get_name"
	decodeSymbol = "decode_png"
	freeSymbol   = "free"
)

var (
	ErrEmptyPath    = errors.New("empty library path")
	ErrDecodeFailed = errors.New("external decode failed")
	ErrUnsupported  = errors.New("dynamic loading is not supported on this platform")
)

// decodeFunc calls decode_png. A zero buf means failure.
type decodeFunc func(data []byte) (buf uintptr, width, height uint32)

// Library is a loaded external decoder. It implements decoder.Decoder.
type Library struct {
	path   string
	name   string
	decode decodeFunc
	// free is nil when no C runtime free could be resolved.
	free   func(buf uintptr)
	close  func() error
	closed bool
}

var _ decoder.Decoder = (*Library)(nil)

func (l *Library) Name() string { return l.name }

func (l *Library) Path() string { return l.path }

func (l *Library) Decode(data []byte) (*decoder.Result, error) {
	buf, w, h := l.decode(data)
	if buf == 0 {
		return nil, ErrDecodeFailed
	}
	return decoder.ForeignResult(int(w), int(h), func() {
		if l.free != nil {
			l.free(buf)
		}
	}), nil
}

// Close unloads the library. Only the first call has an effect.
func (l *Library) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.close(); err != nil {
		return fmt.Errorf("could not unload %s: %w", l.path, err)
	}
	return nil
}
