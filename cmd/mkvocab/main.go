// Command mkvocab builds a binary V2 vocabulary file (spec §6) from a
// tiktoken-format text vocabulary, for callers that want to ship an
// external vocabulary override instead of (or alongside) the embedded
// ones (see pkg/bpe/vocabio).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/llmcost/llmcost/pkg/bpe"
)

var (
	input  = flag.String("in", "", "path to a tiktoken-format text vocabulary")
	output = flag.String("out", "", "path to write the binary V2 vocabulary to")
	help   = flag.Bool("h", false, "display this help")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "mkvocab: both -in and -out are required")
		fmt.Fprintln(os.Stderr, "Try 'mkvocab -h' for more information.")
		os.Exit(64)
	}

	in, err := os.Open(*input)
	if err != nil {
		fatal("cannot read '%s': %v", *input, err)
	}
	defer in.Close()

	vocab, err := bpe.LoadTiktoken(in)
	if err != nil {
		fatal("loading vocabulary: %v", err)
	}

	blob, err := bpe.EncodeBinaryV2(vocab)
	if err != nil {
		fatal("encoding binary vocabulary: %v", err)
	}

	if err := os.WriteFile(*output, blob, 0o644); err != nil {
		fatal("cannot write '%s': %v", *output, err)
	}

	fmt.Fprintf(os.Stderr, "mkvocab: wrote %d tokens (%d bytes) to %s\n", vocab.Size(), len(blob), *output)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: mkvocab -in vocab.tiktoken -out vocab.bpe2

Build a binary V2 vocabulary file from a tiktoken-format text vocabulary.

Options:
  -in path   tiktoken-format text vocabulary to read
  -out path  binary V2 file to write
  -h         display this help
`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "mkvocab: "+format+"\n", args...)
	os.Exit(70)
}
