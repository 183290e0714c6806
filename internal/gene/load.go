package gene

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// CSV column names, matching the table headers of the dashboard.
const (
	ColGene = "Gene"
	ColX    = "Enrichment_Sample1"
	ColY    = "Enrichment_Sample2"
	ColQ    = "Q_Value"
)

var csvHeader = []string{ColGene, ColX, ColY, ColQ}

// Load reads a dataset from a .csv, .yaml or .yml file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrDatasetReadFailed.Error()), "path", path)
	}
	defer f.Close()

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = ReadCSV(f)
	case ".yaml", ".yml":
		records, err = ReadYAML(f)
	default:
		return nil, zerr.With(ErrUnsupportedFormat, "path", path)
	}
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return NewDataset(records)
}

// ReadCSV parses records from CSV with a header row. Columns are matched by
// name, case-insensitively; extra columns are ignored.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, ErrDatasetReadFailed.Error())
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make([]int, len(csvHeader))
	for i, name := range csvHeader {
		c, ok := cols[strings.ToLower(name)]
		if !ok {
			return nil, zerr.With(ErrMalformedRecord, "missing_column", name)
		}
		idx[i] = c
	}

	var out []Record
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrMalformedRecord.Error()), "line", line)
		}
		var nums [3]float64
		for j := 1; j < len(idx); j++ {
			v, perr := strconv.ParseFloat(strings.TrimSpace(row[idx[j]]), 64)
			if perr != nil || !finite(v) {
				err := zerr.With(ErrMalformedRecord, "line", line)
				return nil, zerr.With(err, "column", csvHeader[j])
			}
			nums[j-1] = v
		}
		out = append(out, Record{ID: strings.TrimSpace(row[idx[0]]), X: nums[0], Y: nums[1], Q: nums[2]})
	}
	return out, nil
}

// ReadYAML parses a YAML sequence of records.
func ReadYAML(r io.Reader) ([]Record, error) {
	var out []Record
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, ErrMalformedRecord.Error())
	}
	for i, rec := range out {
		for j, v := range [3]float64{rec.X, rec.Y, rec.Q} {
			if !finite(v) {
				err := zerr.With(zerr.With(ErrMalformedRecord, "index", i), "gene", rec.ID)
				return nil, zerr.With(err, "column", csvHeader[j+1])
			}
		}
	}
	return out, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WriteCSV writes records with the standard header.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.ID, formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Q)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
