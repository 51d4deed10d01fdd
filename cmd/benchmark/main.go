// Command benchmark measures encode time against input size, the §8
// "Complexity" property (encode cost grows O(N log N), not worse) across
// a range of input sizes, and emits a JSON report.
//
// Usage:
//
//	benchmark [-model gpt-4o] [-sizes 1000,10000,100000,1000000] [-out report.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/llmcost/llmcost/pkg/tokenizer"
)

var (
	model    = flag.String("model", "gpt-4o", "model name to resolve an encoding from")
	sizeList = flag.String("sizes", "1000,10000,100000,1000000", "comma-separated input sizes in bytes")
	outPath  = flag.String("out", "", "write the JSON report here instead of stdout")
	help     = flag.Bool("h", false, "display this help")
)

// sample is one (input size, measured encode time) data point.
type sample struct {
	InputBytes  int           `json:"input_bytes"`
	Tokens      int           `json:"tokens"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	BytesPerSec float64       `json:"bytes_per_sec"`
}

// report is the top-level JSON document this tool emits.
type report struct {
	Model     string   `json:"model"`
	Encoding  string   `json:"encoding"`
	GeneratedSamples []sample `json:"samples"`
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	sizes, err := parseSizes(*sizeList)
	if err != nil {
		fatal("invalid -sizes: %v", err)
	}

	tok, err := tokenizer.New(*model)
	if err != nil {
		fatal("resolving model %q: %v", *model, err)
	}
	if !tok.HasExact() {
		fatal("%q has no compiled-in exact encoding; the complexity property only applies to exact tokenization", *model)
	}

	rep := report{Model: *model, Encoding: tok.Encoding().String()}
	for _, n := range sizes {
		input := strings.Repeat("a", n)

		start := time.Now()
		res, err := tok.Encode(input, tokenizer.EncodeOptions{})
		elapsed := time.Since(start)
		if err != nil {
			fatal("encoding %d-byte input: %v", n, err)
		}

		rate := float64(n) / elapsed.Seconds()
		rep.GeneratedSamples = append(rep.GeneratedSamples, sample{
			InputBytes:  n,
			Tokens:      len(res.Tokens),
			Elapsed:     elapsed,
			BytesPerSec: rate,
		})
		fmt.Fprintf(os.Stderr, "benchmark: %10d bytes -> %8d tokens in %v (%.1f MB/s)\n",
			n, len(res.Tokens), elapsed.Round(time.Microsecond), rate/1e6)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatal("cannot write '%s': %v", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		fatal("writing report: %v", err)
	}
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: benchmark [-model gpt-4o] [-sizes 1000,10000,100000,1000000] [-out report.json]

Measure encode time against input size and emit a JSON report.

Options:
  -model string   model name to resolve an encoding from (default "gpt-4o")
  -sizes string   comma-separated input sizes in bytes
  -out string     write the JSON report here instead of stdout
  -h              display this help
`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "benchmark: "+format+"\n", args...)
	os.Exit(1)
}
