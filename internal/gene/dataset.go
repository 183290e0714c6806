package gene

import (
	"math"

	"go.trai.ch/zerr"
)

// Record is one gene row.
type Record struct {
	ID string  `json:"gene" yaml:"gene"`
	X  float64 `json:"enrichment_sample1" yaml:"enrichment_sample1"`
	Y  float64 `json:"enrichment_sample2" yaml:"enrichment_sample2"`
	Q  float64 `json:"q_value" yaml:"q_value"`
}

// Dataset is an immutable, ordered set of records with unique ids.
// It is safe to share between goroutines.
type Dataset struct {
	rows  []Record
	index map[string]uint32
	xb    Range
	yb    Range
}

// NewDataset copies records into a Dataset. It fails on empty or duplicate ids.
func NewDataset(records []Record) (*Dataset, error) {
	ds := &Dataset{
		rows:  make([]Record, len(records)),
		index: make(map[string]uint32, len(records)),
		xb:    Range{Min: math.Inf(1), Max: math.Inf(-1)},
		yb:    Range{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	copy(ds.rows, records)
	for i, r := range ds.rows {
		if r.ID == "" {
			return nil, zerr.With(ErrEmptyID, "row", i)
		}
		if first, ok := ds.index[r.ID]; ok {
			err := zerr.With(ErrDuplicateID, "gene", r.ID)
			return nil, zerr.With(err, "first_row", int(first))
		}
		ds.index[r.ID] = uint32(i)
		ds.xb = widen(ds.xb, r.X)
		ds.yb = widen(ds.yb, r.Y)
	}
	return ds, nil
}

func widen(r Range, v float64) Range {
	if math.IsNaN(v) {
		return r
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.rows) }

// At returns the record at row i.
func (d *Dataset) At(i int) Record { return d.rows[i] }

// Records returns a copy of all records in dataset order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.rows))
	copy(out, d.rows)
	return out
}

// Index returns the row of the record with the given id.
func (d *Dataset) Index(id string) (int, bool) {
	i, ok := d.index[id]
	return int(i), ok
}

// Bounds returns the observed min/max of x and y. For an empty dataset both
// ranges are inverted.
func (d *Dataset) Bounds() (x, y Range) { return d.xb, d.yb }
