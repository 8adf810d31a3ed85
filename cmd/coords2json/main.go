package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/licblocks/internal/crs"
	"github.com/woozymasta/licblocks/internal/geo"
	"github.com/woozymasta/licblocks/internal/parser"

	"github.com/jessevdk/go-flags"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input     string  `short:"i" long:"in"        description:"Listing file path. Reads from stdin if empty"`
	Output    string  `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format    string  `short:"f" long:"format"    description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Threshold float64 `short:"t" long:"threshold" description:"Minimum coordinate magnitude, smaller values are placeholders" default:"0.0001"`
	Raw       bool    `short:"r" long:"raw"       description:"Keep source coordinates, skip reprojection to WGS-84"`
}

// report is the yaml rendition of a parse result.
type report struct {
	CRS         []string         `yaml:"crs"`
	Polygons    int              `yaml:"polygons"`
	Points      int              `yaml:"points"`
	Issues      []string         `yaml:"issues,omitempty"`
	Coordinates orb.MultiPolygon `yaml:"coordinates"`
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

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	var gw crs.Gateway = crs.Identity{}
	if !opts.Raw {
		gw, err = crs.NewProjGateway()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing CRS transforms: %v\n", err)
			os.Exit(1)
		}
	}

	res := newParser(gw, opts.Threshold).Parse(string(inputData))
	for _, issue := range res.Issues {
		fmt.Fprintf(os.Stderr, "Skipped row: %v\n", issue)
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(newReport(res))
	} else {
		feature := geo.NewBlockFeature(res.Geometry, map[string]interface{}{
			"source_gcs": res.CRSNames(),
			"points":     res.Stats.Points,
		})
		outputData, err = json.MarshalIndent(feature, "", "  ")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d polygons to %s (format: %s)\n", len(res.Geometry), opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}

	if res.Empty() {
		os.Exit(2)
	}
}

func newParser(gw crs.Gateway, threshold float64) *parser.Parser {
	return parser.New(gw, threshold)
}

func newReport(res parser.Result) report {
	r := report{
		CRS:         res.CRSNames(),
		Polygons:    len(res.Geometry),
		Points:      res.Stats.Points,
		Coordinates: res.Geometry,
	}
	for _, issue := range res.Issues {
		r.Issues = append(r.Issues, issue.Error())
	}

	return r
}
