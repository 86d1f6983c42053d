package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pngbench/bench"
	"pngbench/decoder"
)

func sampleTimes() *bench.Times {
	times := bench.NewTimes(bench.OpDecode, 5, []string{"image/png", "png-stream", "rust"})
	times.Observe(0, 1_234_999, false)
	times.Observe(1, 999, false)
	times.Observe(2, 2_000_001, true)
	return times
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"text":        FormatText,
		"JSON":        FormatJSON,
		" prometheus": FormatPrometheus,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleTimes()))
	assert.Equal(t, "image/png: 1234 usec\npng-stream: 0 usec\nrust: 2000 usec\n", buf.String())
}

func TestTextSkipsUnobserved(t *testing.T) {
	times := bench.NewTimes(bench.OpDecode, 1, []string{"seen", "unseen"})
	times.Observe(0, 5000, false)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, times))
	assert.Equal(t, "seen: 5 usec\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleTimes(), Meta{File: "sample.png", Size: 4096}))

	var got jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "sample.png", got.File)
	assert.Equal(t, 4096, got.Size)
	assert.Equal(t, "decode", got.Op)
	assert.Equal(t, 5, got.Runs)
	require.Len(t, got.Results, 3)
	assert.Equal(t, jsonResult{Name: "rust", BestNs: 2_000_001, BestUsec: 2000, Runs: 1, Failures: 1}, got.Results[2])
}

func TestPrometheus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Prometheus(&buf, sampleTimes()))

	out := buf.String()
	assert.Contains(t, out, "# TYPE pngbench_best_duration_seconds gauge")
	assert.Contains(t, out, `pngbench_best_duration_seconds{implementation="image/png",op="decode"} 0.001234999`)
	assert.Contains(t, out, `pngbench_failures{implementation="rust",op="decode"} 1`)
	assert.Contains(t, out, `pngbench_runs{op="decode"} 5`)
}

func TestWriteDispatch(t *testing.T) {
	for _, f := range []Format{FormatText, FormatJSON, FormatPrometheus} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, sampleTimes(), Meta{}))
		assert.NotEmpty(t, buf.String(), f)
	}
	assert.ErrorIs(t, Write(&bytes.Buffer{}, Format("csv"), sampleTimes(), Meta{}), ErrUnknownFormat)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	err := Info(&buf, InfoParams{
		Decoders:   decoder.Builtin(decoder.Options{}),
		DecodeRuns: 5,
		EncodeRuns: 3,
	})
	require.NoError(t, err)

	out := buf.String()
	for _, name := range []string{"image/png", "png-stream", "imaging", "image-registry", "png-guarded"} {
		assert.Contains(t, out, name+" build version: ")
	}
	assert.True(t, strings.HasSuffix(out, "\ndecode times are the best of 5 runs\n"))
	assert.NotContains(t, out, "encode times")
	assert.NotContains(t, out, "external:")
	assert.Contains(t, out, "build and runtime versions match")
}

type skewedDecoder struct{}

func (skewedDecoder) Name() string { return "skewed" }

func (skewedDecoder) Decode([]byte) (*decoder.Result, error) { return nil, nil }

func (skewedDecoder) Version() decoder.Version {
	return decoder.Version{Compiled: "1.0.0", Runtime: "1.1.0"}
}

func TestInfoVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := Info(&buf, InfoParams{Decoders: []decoder.Decoder{skewedDecoder{}}, DecodeRuns: 5})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "skewed build version: 1.0.0, runtime version: 1.1.0\n")
	assert.NotContains(t, out, "versions match")
}

func TestInfoWithEncodeAndExternal(t *testing.T) {
	var buf bytes.Buffer
	err := Info(&buf, InfoParams{
		Decoders:   decoder.Builtin(decoder.Options{}),
		External:   "rust",
		DecodeRuns: 5,
		EncodeRuns: 3,
		Encode:     true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "external: rust\n")
	enc := strings.Index(out, "encode times are the best of 3 runs")
	dec := strings.Index(out, "decode times are the best of 5 runs")
	require.NotEqual(t, -1, enc)
	assert.Less(t, enc, dec)
}
