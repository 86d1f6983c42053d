//go:build !(darwin || freebsd || linux || windows)

package external

import "fmt"

func Load(path string) (*Library, error) {
	if path == "" {
		return nil, fmt.Errorf("could not load the external decoder: %w", ErrEmptyPath)
	}
	return nil, fmt.Errorf("could not load %s: %w", path, ErrUnsupported)
}
