// Package bench times decoders and encoders with a best-of-N protocol.
//
// Each implementation is invoked once per run, in order, on a single
// goroutine; only the fastest run is kept. There is no timeout: a hung
// implementation hangs the benchmark.
package bench

import (
	"image"
	"log/slog"

	"pngbench/decoder"
	"pngbench/encoder"
	"pngbench/internal/clock"
)

const (
	OpDecode = "decode"
	OpEncode = "encode"
)

// Runner is not safe for concurrent use; concurrent runs would distort each
// other's timings.
type Runner struct {
	clock  clock.Clock
	logger *slog.Logger
}

func NewRunner(c clock.Clock, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{clock: c, logger: logger}
}

// Decode runs every decoder runs times over input and keeps the best time of
// each. A failed decode is logged and still timed.
func (r *Runner) Decode(input []byte, decoders []decoder.Decoder, runs int) *Times {
	names := make([]string, len(decoders))
	for i, d := range decoders {
		names[i] = d.Name()
	}
	times := NewTimes(OpDecode, runs, names)

	for run := 0; run < runs; run++ {
		for i, d := range decoders {
			a := r.clock.Now()
			res, err := d.Decode(input)
			b := r.clock.Now()

			if err != nil {
				r.logger.Error("decode failed", "decoder", d.Name(), "run", run, "error", err)
			}
			times.Observe(i, b-a, err != nil)
			res.Release()
		}
	}
	return times
}

// Encode is Decode for encoders; the encoded output is discarded.
func (r *Runner) Encode(img image.Image, encoders []encoder.Encoder, runs int) *Times {
	names := make([]string, len(encoders))
	for i, e := range encoders {
		names[i] = e.Name()
	}
	times := NewTimes(OpEncode, runs, names)

	for run := 0; run < runs; run++ {
		for i, e := range encoders {
			a := r.clock.Now()
			_, err := e.Encode(img)
			b := r.clock.Now()

			if err != nil {
				r.logger.Error("encode failed", "encoder", e.Name(), "run", run, "error", err)
			}
			times.Observe(i, b-a, err != nil)
		}
	}
	return times
}
