package pngtest

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// DecoderLibSource is a C decoder library named "cext". decode_png reads the
// dimensions from IHDR and returns a zeroed malloc'd buffer, or NULL for input
// without a PNG signature.
const DecoderLibSource = `#include <stdint.h>
#include <stdlib.h>
#include <string.h>

const char *get_name(void) { return "cext"; }

static uint32_t be32(const uint8_t *p) {
	return (uint32_t)p[0] << 24 | (uint32_t)p[1] << 16 | (uint32_t)p[2] << 8 | (uint32_t)p[3];
}

uint8_t *decode_png(const uint8_t *data, uint64_t size, uint32_t *w, uint32_t *h) {
	static const uint8_t sig[8] = {0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'};
	if (size < 24 || memcmp(data, sig, sizeof sig) != 0) {
		return NULL;
	}
	*w = be32(data + 16);
	*h = be32(data + 20);
	return calloc((size_t)*w * *h, 4);
}
`

// BuildSharedLib compiles src into a shared library named name inside a
// temporary directory and returns its path. The test is skipped when no C
// compiler is available or the toolchain rejects the flags.
func BuildSharedLib(tb testing.TB, name, src string, flags ...string) string {
	tb.Helper()
	if runtime.GOOS == "windows" {
		tb.Skip("shared library fixtures are built for unix only")
	}
	cc, err := exec.LookPath("cc")
	if err != nil {
		tb.Skip("no C compiler available")
	}

	dir := tb.TempDir()
	srcPath := filepath.Join(dir, name+".c")
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		tb.Fatalf("Could not write the library source: %v", err)
	}
	out := filepath.Join(dir, name)
	args := append([]string{"-shared", "-fPIC", "-o", out}, flags...)
	args = append(args, srcPath)
	if msg, err := exec.Command(cc, args...).CombinedOutput(); err != nil {
		tb.Skipf("Could not build %s: %v\n%s", name, err, msg)
	}
	return out
}
