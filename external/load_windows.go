//go:build windows

package external

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procFree = windows.NewLazySystemDLL("msvcrt.dll").NewProc(freeSymbol)

// Load opens the DLL at path and resolves the decoder symbols. Errors carry
// the loader's own message.
func Load(path string) (*Library, error) {
	if path == "" {
		return nil, fmt.Errorf("could not load the external decoder: %w", ErrEmptyPath)
	}
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	lib, err := bind(dll)
	if err != nil {
		_ = dll.Release()
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	lib.path = path
	return lib, nil
}

func bind(dll *windows.DLL) (*Library, error) {
	getName, err := dll.FindProc(nameSymbol)
	if err != nil {
		return nil, err
	}
	decodePNG, err := dll.FindProc(decodeSymbol)
	if err != nil {
		return nil, err
	}

	name, _, _ := getName.Call()
	return &Library{
		name: windows.BytePtrToString((*byte)(unsafe.Pointer(name))),
		decode: func(data []byte) (uintptr, uint32, uint32) {
			var w, h uint32
			var p uintptr
			if len(data) > 0 {
				p = uintptr(unsafe.Pointer(&data[0]))
			}
			buf, _, _ := decodePNG.Call(p, uintptr(len(data)), uintptr(unsafe.Pointer(&w)), uintptr(unsafe.Pointer(&h)))
			return buf, w, h
		},
		free:  lookupFree(),
		close: dll.Release,
	}, nil
}

// lookupFree returns msvcrt's free, or nil when it cannot be found.
func lookupFree() func(buf uintptr) {
	if procFree.Find() != nil {
		return nil
	}
	return func(buf uintptr) {
		procFree.Call(buf)
	}
}
