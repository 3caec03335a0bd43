package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// LoadReport accounts for what happened while ingesting a bar file.
type LoadReport struct {
	Lines      int // data lines seen (header excluded)
	Bars       int // bars accepted
	BadLines   int // rows that failed to parse
	Duplicates int // rows whose date repeated the previous row
}

// LoadCSV reads a daily bar file with rows of the form
//
//	date,open,high,low,close
//
// Dates are YYYY-MM-DD. An optional header row is skipped. Unparseable rows
// are counted, not fatal; the caller decides whether the report is
// acceptable. Rows repeating the previous date are dropped as duplicates.
// The resulting series is validated with CheckSeries before return.
func LoadCSV(path string) ([]Bar, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()

	bars, rep, err := readCSV(f)
	if err != nil {
		return nil, rep, fmt.Errorf("read bars %s: %w", path, err)
	}
	if err := CheckSeries(bars); err != nil {
		return nil, rep, err
	}
	return bars, rep, nil
}

func readCSV(r io.Reader) ([]Bar, LoadReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length is checked per-row below

	var bars []Bar
	var rep LoadReport

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rep, err
		}

		b, ok := parseBarRow(row)
		if !ok {
			// First unparseable row is usually the header; count the rest.
			if rep.Lines > 0 || !looksLikeHeader(row) {
				rep.Lines++
				rep.BadLines++
			}
			continue
		}
		rep.Lines++

		if n := len(bars); n > 0 && b.Day().Equal(bars[n-1].Day()) {
			rep.Duplicates++
			continue
		}
		bars = append(bars, b)
		rep.Bars++
	}

	return bars, rep, nil
}

func parseBarRow(row []string) (Bar, bool) {
	if len(row) < 5 {
		return Bar{}, false
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return Bar{}, false
	}

	var px [4]float64
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return Bar{}, false
		}
		px[i] = v
	}

	return Bar{
		Date:  date.UTC(),
		Open:  px[0],
		High:  px[1],
		Low:   px[2],
		Close: px[3],
	}, true
}

func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "date" || first == "time" || first == "day"
}
