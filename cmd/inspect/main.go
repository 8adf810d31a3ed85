package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/woozymasta/licblocks/internal/rfgf"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Input string `short:"i" long:"in" env:"RFGF_RESULT" description:"Registry export to print" required:"true"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	tbl, err := rfgf.Load(opts.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading export: %v\n", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	if err := tbl.Fprint(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}
