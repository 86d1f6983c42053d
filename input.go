// Package pngbench compares the decode latency of several PNG decoders on a
// single input file.
package pngbench

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrEmptyInput = errors.New("input file is empty")
	ErrShortRead  = errors.New("short read")
)

// ReadInput reads the whole file at path into a buffer sized to the file.
func ReadInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the input file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat the input file: %w", err)
	}
	size := info.Size()
	if size < 1 {
		return nil, fmt.Errorf("could not read %s: %w", path, ErrEmptyInput)
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("could not read %s: %d bytes does not fit in memory", path, size)
	}

	buf := make([]byte, size)
	n, err := io.ReadFull(f, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("could not read %s: %w: got %d of %d bytes", path, ErrShortRead, n, size)
		}
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return buf, nil
}
