package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pngbench"
	"pngbench/bench"
	"pngbench/decoder"
	"pngbench/encoder"
	"pngbench/external"
	"pngbench/internal/clock"
	"pngbench/internal/config"
	"pngbench/internal/logging"
	"pngbench/report"
)

const usage = `Usage: pngbench <file> [enc]
       pngbench info [enc]
Examples:
	pngbench image.png
	pngbench image.png enc
	EXTERNAL_LIB=./libpngrs.so pngbench image.png
	pngbench info`

const (
	infoCommand  = "info"
	encodeOption = "enc"
)

var errNoInput = errors.New("no input file")

func main() {
	log.SetFlags(0)
	log.SetPrefix("pngbench: ")
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "pngbench <file> [enc]",
		Short: "Compare the decode latency of PNG decoders",
		Long: `Decodes <file> with every built-in decoder, plus the decoder exported by
the shared library named in EXTERNAL_LIB if set, and prints the best time of
each in microseconds. "enc" benchmarks encoders instead; "info" prints the
decoder versions and run counts.`,
		Example:       usage,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if len(args) < 1 {
		return errNoInput
	}
	cfg, err := config.Load(v, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var lib *external.Library
	if cfg.ExternalLibSet {
		lib, err = external.Load(cfg.ExternalLib)
		if err != nil {
			return err
		}
		defer func() {
			if err := lib.Close(); err != nil {
				logger.Warn("could not unload the external decoder", "error", err)
			}
		}()
		logger.Debug("loaded external decoder", "name", lib.Name(), "path", lib.Path())
	}

	encode := false
	if len(args) > 1 {
		if args[1] == encodeOption {
			encode = true
		} else {
			logger.Warn("unrecognized option", "option", args[1])
		}
	}

	opts := decoder.Options{MaxPixels: cfg.MaxPixels}
	out := cmd.OutOrStdout()

	if args[0] == infoCommand {
		params := report.InfoParams{
			Decoders:   decoder.Builtin(opts),
			DecodeRuns: cfg.DecodeRuns,
			EncodeRuns: cfg.EncodeRuns,
			Encode:     encode,
		}
		if lib != nil {
			params.External = lib.Name()
		}
		return report.Info(out, params)
	}

	input, err := pngbench.ReadInput(args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded input", "file", args[0], "size", humanize.Bytes(uint64(len(input))))

	runner := bench.NewRunner(clock.Monotonic{}, logger)
	var times *bench.Times
	if encode {
		times, err = benchmarkEncode(runner, input, cfg.EncodeRuns)
		if err != nil {
			return err
		}
	} else {
		decoders := decoder.Builtin(opts)
		if lib != nil {
			decoders = append(decoders, lib)
		}
		times = runner.Decode(input, decoders, cfg.DecodeRuns)
	}
	return report.Write(out, format, times, report.Meta{File: args[0], Size: len(input)})
}

// benchmarkEncode decodes the input once, untimed, and times the encoders on
// the resulting image.
func benchmarkEncode(runner *bench.Runner, input []byte, runs int) (*bench.Times, error) {
	res, err := decoder.Reference{}.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("could not decode the input for the encode benchmark: %w", err)
	}
	defer res.Release()
	return runner.Encode(res.Image(), encoder.Builtin(), runs), nil
}
