package gene

import (
	"fmt"
	"math/rand"
)

const (
	DefaultPoints = 1000
	DefaultSeed   = 42
)

// Simulate builds a deterministic dataset of n genes: enrichment values drawn
// from Normal(10, 3) on both axes and q-values from Uniform(0, 0.1).
func Simulate(n int, seed int64) *Dataset {
	if n < 0 {
		n = 0
	}
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64()*3 + 10
	}
	for i := range ys {
		ys[i] = rng.NormFloat64()*3 + 10
	}
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			ID: fmt.Sprintf("Gene_%d", i),
			X:  xs[i],
			Y:  ys[i],
			Q:  rng.Float64() * 0.1,
		}
	}
	// ids are generated unique
	ds, _ := NewDataset(records)
	return ds
}
