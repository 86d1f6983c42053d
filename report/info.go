package report

import (
	"fmt"
	"io"

	"pngbench/decoder"
)

// InfoParams is what Info prints.
type InfoParams struct {
	Decoders []decoder.Decoder
	// External is the loaded external decoder's name, empty when none is loaded.
	External   string
	DecodeRuns int
	EncodeRuns int
	// Encode adds the encode run count.
	Encode bool
}

// Info prints the version of every decoder and the configured run counts.
func Info(w io.Writer, p InfoParams) error {
	matched := 0
	for _, d := range p.Decoders {
		v, ok := d.(decoder.Versioned)
		if !ok {
			fmt.Fprintf(w, "%s\n", d.Name())
			continue
		}
		ver := v.Version()
		if ver.Compiled == ver.Runtime {
			matched++
		}
		fmt.Fprintf(w, "%s build version: %s, runtime version: %s\n", d.Name(), ver.Compiled, ver.Runtime)
	}
	if matched > 0 && matched == len(p.Decoders) {
		fmt.Fprintln(w, "(decoders are linked statically: build and runtime versions match)")
	}
	if p.External != "" {
		fmt.Fprintf(w, "external: %s\n", p.External)
	}

	if p.Encode {
		fmt.Fprintf(w, "\nencode times are the best of %d runs\n", p.EncodeRuns)
	}
	_, err := fmt.Fprintf(w, "\ndecode times are the best of %d runs\n", p.DecodeRuns)
	return err
}
