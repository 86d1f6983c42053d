//go:build darwin || freebsd || linux

package external

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Load opens the shared library at path and resolves the decoder symbols.
// Errors carry the dynamic loader's own message.
func Load(path string) (*Library, error) {
	if path == "" {
		return nil, fmt.Errorf("could not load the external decoder: %w", ErrEmptyPath)
	}
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	lib, err := bind(handle)
	if err != nil {
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	lib.path = path
	return lib, nil
}

func bind(handle uintptr) (*Library, error) {
	var (
		getName   func() string
		decodePNG func(data unsafe.Pointer, size uint64, w, h unsafe.Pointer) uintptr
	)
	symbols := []struct {
		name string
		fptr any
	}{
		{nameSymbol, &getName},
		{decodeSymbol, &decodePNG},
	}
	for _, s := range symbols {
		sym, err := purego.Dlsym(handle, s.name)
		if err != nil {
			return nil, err
		}
		purego.RegisterFunc(s.fptr, sym)
	}

	return &Library{
		name: getName(),
		decode: func(data []byte) (uintptr, uint32, uint32) {
			var w, h uint32
			var p unsafe.Pointer
			if len(data) > 0 {
				p = unsafe.Pointer(&data[0])
			}
			buf := decodePNG(p, uint64(len(data)), unsafe.Pointer(&w), unsafe.Pointer(&h))
			return buf, w, h
		},
		free:  lookupFree(handle),
		close: func() error { return purego.Dlclose(handle) },
	}, nil
}

// lookupFree finds the C runtime's free among the objects already loaded in
// the process, then in the library's own dependencies. It returns nil when
// neither exports one.
func lookupFree(handle uintptr) func(buf uintptr) {
	for _, h := range []uintptr{purego.RTLD_DEFAULT, handle} {
		sym, err := purego.Dlsym(h, freeSymbol)
		if err != nil {
			continue
		}
		var free func(buf uintptr)
		purego.RegisterFunc(&free, sym)
		return free
	}
	return nil
}
