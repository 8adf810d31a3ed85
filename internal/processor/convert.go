// Package processor converts registry exports into license block geometries.
package processor

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/licblocks/internal/metrics"
	"github.com/woozymasta/licblocks/internal/parser"
	"github.com/woozymasta/licblocks/internal/rfgf"
)

// progressEvery is the row interval of progress reports.
const progressEvery = 1000

// Summary counts the rows of one conversion.
type Summary struct {
	Rows     int // rows in the export
	Listings int // rows carrying a coordinate listing
	Blocks   int // listings that produced at least one polygon
	Empty    int // listings without a usable polygon
}

type job struct {
	Row int
}

type result struct {
	Row   int
	Block rfgf.Block
	Valid bool
}

// Convert parses the coordinate listing of every row of tbl. Blocks are
// returned in row order; rows without a usable polygon are skipped.
func Convert(tbl *rfgf.Table, p *parser.Parser, concurrency int) ([]rfgf.Block, Summary) {
	if concurrency <= 0 {
		concurrency = 1
	}

	summary := Summary{Rows: tbl.Len()}

	jobs := make(chan job, concurrency)
	results := make(chan result, concurrency)

	go func() {
		for i := 0; i < tbl.Len(); i++ {
			if !tbl.HasGeometry(i) {
				continue
			}
			jobs <- job{Row: i}
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- convertRow(tbl, p, j.Row)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	byRow := make(map[int]rfgf.Block)
	for res := range results {
		summary.Listings++
		if res.Valid {
			byRow[res.Row] = res.Block
			summary.Blocks++
		} else {
			summary.Empty++
		}

		if summary.Listings%progressEvery == 0 {
			log.Info().
				Int("listings", summary.Listings).
				Int("blocks", summary.Blocks).
				Msg("Conversion progress")
		}
	}

	blocks := make([]rfgf.Block, 0, len(byRow))
	for i := 0; i < tbl.Len(); i++ {
		if b, ok := byRow[i]; ok {
			blocks = append(blocks, b)
		}
	}

	log.Info().
		Int("rows", summary.Rows).
		Int("listings", summary.Listings).
		Int("blocks", summary.Blocks).
		Int("empty", summary.Empty).
		Msg("Conversion finished")

	return blocks, summary
}

func convertRow(tbl *rfgf.Table, p *parser.Parser, row int) result {
	lic := tbl.License(row)
	res := p.Parse(lic.CoordsText)
	metrics.ObserveParse(res)

	if res.Empty() {
		log.Debug().
			Int("row", row).
			Str("gos_reg_num", lic.GosRegNum).
			Int("issues", len(res.Issues)).
			Msg("Listing has no usable polygon")
		return result{Row: row}
	}

	lic.SourceGCS = strings.Join(res.CRSNames(), ", ")
	return result{
		Row:   row,
		Block: rfgf.Block{License: lic, Geometry: res.Geometry},
		Valid: true,
	}
}
