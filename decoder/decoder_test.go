package decoder

import (
	"encoding/binary"
	"hash/crc32"
	"image"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pngbench/internal/pngtest"
)

func TestBuiltinOrder(t *testing.T) {
	var names []string
	for _, d := range Builtin(Options{MaxPixels: 1 << 20}) {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"image/png", "png-stream", "imaging", "image-registry", "png-guarded"}, names)
}

func TestDecodeOnePixel(t *testing.T) {
	data := pngtest.Encode(t, pngtest.Gradient(1, 1))
	for _, d := range Builtin(Options{MaxPixels: 1}) {
		res, err := d.Decode(data)
		require.NoErrorf(t, err, "Could not decode with %s: %v", d.Name(), err)
		assert.Equal(t, 1, res.Width, d.Name())
		assert.Equal(t, 1, res.Height, d.Name())
		assert.Len(t, res.Pix, 4, d.Name())
		res.Release()
		assert.Nil(t, res.Pix)
	}
}

func TestDecodersAgree(t *testing.T) {
	fixtures := map[string]image.Image{
		"opaque":   pngtest.Opaque(37, 19),
		"paletted": pngtest.Paletted(16, 9),
		"gray":     pngtest.Gray(8, 8),
	}
	for name, img := range fixtures {
		data := pngtest.Encode(t, img)
		want, err := Reference{}.Decode(data)
		require.NoErrorf(t, err, "Could not decode the %s fixture: %v", name, err)

		for _, d := range Builtin(Options{MaxPixels: 1 << 20}) {
			got, err := d.Decode(data)
			require.NoErrorf(t, err, "Could not decode the %s fixture with %s: %v", name, d.Name(), err)
			assert.Equalf(t, want.Width, got.Width, "%s/%s", name, d.Name())
			assert.Equalf(t, want.Height, got.Height, "%s/%s", name, d.Name())
			assert.Equalf(t, want.Pix, got.Pix, "%s/%s", name, d.Name())
			got.Release()
		}
		want.Release()
	}
}

func TestStreamingFillsHeader(t *testing.T) {
	res, err := Streaming{}.Decode(pngtest.Encode(t, pngtest.Gradient(5, 3)))
	require.NoError(t, err)
	defer res.Release()

	require.NotNil(t, res.Header)
	assert.Equal(t, uint32(5), res.Header.Width)
	assert.Equal(t, uint32(3), res.Header.Height)
	assert.Equal(t, uint8(8), res.Header.BitDepth)
	assert.Equal(t, TruecolorAlpha, res.Header.ColorType)
}

func TestGuardedRejectsOversizedImages(t *testing.T) {
	data := pngtest.Encode(t, pngtest.Gradient(10, 10))
	res, err := Guarded{MaxPixels: 99}.Decode(data)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, res)

	res, err = Guarded{MaxPixels: 100}.Decode(data)
	require.NoError(t, err)
	res.Release()
}

func TestGuardedChecksBudgetBeforeDecoding(t *testing.T) {
	// Declare 100000x100000 in IHDR and drop everything after it.
	data := pngtest.Encode(t, pngtest.Gradient(1, 1))[:33]
	binary.BigEndian.PutUint32(data[16:], 100000)
	binary.BigEndian.PutUint32(data[20:], 100000)
	binary.BigEndian.PutUint32(data[29:], crc32.ChecksumIEEE(data[12:29]))

	res, err := Guarded{MaxPixels: 1 << 20}.Decode(data)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, res)
}

func TestDecodeGarbage(t *testing.T) {
	for _, d := range Builtin(Options{MaxPixels: 1 << 20}) {
		res, err := d.Decode([]byte("definitely not a png"))
		assert.Errorf(t, err, "%s accepted garbage", d.Name())
		assert.Nil(t, res)
		res.Release()
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := pngtest.Encode(t, pngtest.Gradient(20, 20))
	data = data[:len(data)/2]
	for _, d := range Builtin(Options{MaxPixels: 1 << 20}) {
		_, err := d.Decode(data)
		assert.Errorf(t, err, "%s accepted a truncated file", d.Name())
	}
}

func TestReleaseIsNilSafeAndIdempotent(t *testing.T) {
	var nilResult *Result
	assert.NotPanics(t, nilResult.Release)
	assert.Nil(t, nilResult.Image())

	calls := 0
	res := ForeignResult(3, 2, func() { calls++ })
	assert.Nil(t, res.Image())
	res.Release()
	res.Release()
	assert.Equal(t, 1, calls)
}

func TestResultImage(t *testing.T) {
	src := pngtest.Gradient(4, 2)
	res, err := Imaging{}.Decode(pngtest.Encode(t, src))
	require.NoError(t, err)
	defer res.Release()

	img := res.Image()
	require.NotNil(t, img)
	assert.Equal(t, src.Bounds(), img.Bounds())
	assert.Equal(t, src.NRGBAAt(3, 1), img.NRGBAAt(3, 1))
}

func TestVersions(t *testing.T) {
	for _, d := range Builtin(Options{}) {
		v, ok := d.(Versioned)
		require.Truef(t, ok, "%s does not report a version", d.Name())
		assert.NotEmpty(t, v.Version().Compiled, d.Name())
		assert.NotEmpty(t, v.Version().Runtime, d.Name())
	}
	for _, v := range []Version{Imaging{}.Version(), Registry{}.Version()} {
		assert.Equal(t, v.Compiled, v.Runtime)
	}
	assert.Equal(t, runtime.Version(), Reference{}.Version().Runtime)
}
