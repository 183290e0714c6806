package web

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"enrichment-dash/internal/gene"
)

// viewETag hashes the canonical form of v plus the representation details
// in extra. Selection order does not change the result, so it is sorted.
func viewETag(v gene.ViewState, extra ...string) string {
	hasher := xxhash.New()
	write := func(s string) {
		_, _ = hasher.WriteString(s)
		_, _ = hasher.Write([]byte{0})
	}

	sel := slices.Clone(v.Selection)
	slices.Sort(sel)
	sel = slices.Compact(sel)
	write("sel")
	for _, id := range sel {
		write(id)
	}
	write("x")
	writeRange(write, v.XRange)
	write("y")
	writeRange(write, v.YRange)
	write("q")
	write(v.Query)
	for _, e := range extra {
		write(e)
	}
	return fmt.Sprintf("%q", fmt.Sprintf("%016x", hasher.Sum64()))
}

func writeRange(write func(string), r *gene.Range) {
	if r == nil {
		write("-")
		return
	}
	write(strconv.FormatFloat(r.Min, 'g', -1, 64))
	write(strconv.FormatFloat(r.Max, 'g', -1, 64))
}
