package web

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/plot"
)

// ErrBadParam is returned for malformed query parameters.
var ErrBadParam = zerr.New("invalid query parameter")

// parseView builds the view state of one request. Both ends of an axis
// must be given to constrain it.
func parseView(q url.Values) (gene.ViewState, error) {
	var v gene.ViewState
	var err error
	if v.XRange, err = parseRange(q, "xmin", "xmax"); err != nil {
		return v, err
	}
	if v.YRange, err = parseRange(q, "ymin", "ymax"); err != nil {
		return v, err
	}
	if sel := q.Get("select"); sel != "" {
		for _, id := range strings.Split(sel, ",") {
			if id = strings.TrimSpace(id); id != "" {
				v.Selection = append(v.Selection, id)
			}
		}
	}
	v.Query = strings.TrimSpace(q.Get("q"))
	return v, nil
}

// parseWhere reads the repeated where parameter, e.g. where=Q_Value<0.05.
func parseWhere(q url.Values) ([]gene.ColumnFilter, error) {
	var out []gene.ColumnFilter
	for _, expr := range q["where"] {
		f, err := gene.ParseColumnFilter(expr)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrBadParam.Error()), "param", "where")
		}
		out = append(out, f)
	}
	return out, nil
}

func parseRange(q url.Values, minKey, maxKey string) (*gene.Range, error) {
	rawMin, rawMax := q.Get(minKey), q.Get(maxKey)
	if rawMin == "" && rawMax == "" {
		return nil, nil
	}
	if rawMin == "" || rawMax == "" {
		missing := minKey
		if rawMax == "" {
			missing = maxKey
		}
		return nil, zerr.With(ErrBadParam, "missing", missing)
	}
	lo, err := parseFloat(minKey, rawMin)
	if err != nil {
		return nil, err
	}
	hi, err := parseFloat(maxKey, rawMax)
	if err != nil {
		return nil, err
	}
	return &gene.Range{Min: lo, Max: hi}, nil
}

func parseFloat(key, raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, zerr.With(zerr.With(ErrBadParam, "param", key), "value", raw)
	}
	return f, nil
}

func parseScale(q url.Values, key string) (plot.Scale, error) {
	s, err := plot.ParseScale(q.Get(key))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrBadParam.Error()), "param", key)
	}
	return s, nil
}

func parseSize(q url.Values, key string, def, limit int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > limit {
		return 0, zerr.With(zerr.With(ErrBadParam, "param", key), "value", raw)
	}
	return n, nil
}
