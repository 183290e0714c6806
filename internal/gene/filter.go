package gene

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// ViewState is a snapshot of what the user is looking at. The zero value
// means no selection, no viewport constraint and no query.
type ViewState struct {
	// Selection holds ids picked directly on the chart. Empty means absent.
	Selection []string `json:"selection,omitempty"`
	// XRange and YRange are the visible axis bounds. nil means absent.
	XRange *Range `json:"x_range,omitempty"`
	YRange *Range `json:"y_range,omitempty"`
	// Query is a case-insensitive substring of the gene id. Empty means absent.
	Query string `json:"query,omitempty"`
}

// Path names the stage that produced the candidates of a filter call.
type Path string

const (
	PathSelection Path = "selection"
	PathViewport  Path = "viewport"
)

// PathOf reports which candidate stage Filter uses for v.
func PathOf(v ViewState) Path {
	if len(v.Selection) > 0 {
		return PathSelection
	}
	return PathViewport
}

// Filter returns the visible records for v in dataset order.
// It never fails; an empty slice means nothing matched.
func Filter(ds *Dataset, v ViewState) []Record {
	return Collect(ds, Visible(ds, v))
}

// Collect returns the records of the rows in bm, in dataset order.
func Collect(ds *Dataset, bm *roaring.Bitmap) []Record {
	out := make([]Record, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i < len(ds.rows) {
			out = append(out, ds.rows[i])
		}
	}
	return out
}

// Visible returns the row indices of the visible records. Iteration order of
// the bitmap is ascending, which is dataset order.
func Visible(ds *Dataset, v ViewState) *roaring.Bitmap {
	var cand *roaring.Bitmap
	switch PathOf(v) {
	case PathSelection:
		cand = selected(ds, v.Selection)
	default:
		xb, yb := ds.Bounds()
		cand = inViewport(ds, v.XRange.or(xb), v.YRange.or(yb))
	}
	if v.Query == "" || cand.IsEmpty() {
		return cand
	}
	return roaring.And(cand, matching(ds, v.Query))
}

func selected(ds *Dataset, ids []string) *roaring.Bitmap {
	bm := roaring.New()
	for _, id := range ids {
		if i, ok := ds.index[id]; ok {
			bm.Add(i)
		}
	}
	return bm
}

func inViewport(ds *Dataset, xr, yr Range) *roaring.Bitmap {
	bm := roaring.New()
	if xr.Inverted() || yr.Inverted() {
		return bm
	}
	for i, r := range ds.rows {
		if xr.Contains(r.X) && yr.Contains(r.Y) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

func matching(ds *Dataset, query string) *roaring.Bitmap {
	q := strings.ToLower(query)
	bm := roaring.New()
	for i, r := range ds.rows {
		if strings.Contains(strings.ToLower(r.ID), q) {
			bm.Add(uint32(i))
		}
	}
	return bm
}
