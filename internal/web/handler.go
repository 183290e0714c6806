package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/infra/logx"
	"enrichment-dash/internal/metrics"
	"enrichment-dash/internal/plot"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"

	maxChartSide = 4096
)

// Handler serves the filtered dataset over HTTP. Each request builds its
// own view state; the dataset is shared read-only.
type Handler struct {
	Dataset  *gene.Dataset
	Observer metrics.Observer
}

// NewHandler constructs a gene HTTP handler.
func NewHandler(ds *gene.Dataset, obs metrics.Observer) *Handler {
	return &Handler{Dataset: ds, Observer: obs}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Dataset == nil {
		writeError(w, http.StatusInternalServerError, "dataset not configured")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch path {
	case "/api/v1/genes":
		h.handleGenes(w, r)
	case "/api/v1/bounds":
		h.handleBounds(w, r)
	case "/chart.png":
		h.handleChart(w, r)
	default:
		writeError(w, http.StatusNotFound, "endpoint not found")
	}
}

type genesResponse struct {
	Genes   []gene.Record  `json:"genes"`
	Total   int            `json:"total"`
	Visible int            `json:"visible"`
	View    gene.ViewState `json:"view"`
}

// boundsResponse carries null ranges for an empty dataset.
type boundsResponse struct {
	X     *gene.Range `json:"x"`
	Y     *gene.Range `json:"y"`
	Total int         `json:"total"`
}

func (h *Handler) handleGenes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := parseView(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	where, err := parseWhere(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	format := negotiateFormat(r)
	if format == "" {
		writeError(w, http.StatusBadRequest, "unsupported format")
		return
	}

	extra := []string{format}
	for _, f := range where {
		extra = append(extra, f.String())
	}
	etag := viewETag(view, extra...)
	if notModified(w, r, etag) {
		return
	}

	rows := gene.Collect(h.Dataset, metrics.Visible(h.Observer, metrics.OriginHTTP, h.Dataset, view))
	rows = gene.ApplyColumns(rows, where)
	if format == formatCSV {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="genes.csv"`)
		if err := gene.WriteCSV(w, rows); err != nil {
			logx.Warnf("write csv: %v", err)
		}
		return
	}
	if rows == nil {
		rows = []gene.Record{}
	}
	writeJSON(w, http.StatusOK, genesResponse{
		Genes:   rows,
		Total:   h.Dataset.Len(),
		Visible: len(rows),
		View:    view,
	})
}

func (h *Handler) handleBounds(w http.ResponseWriter, _ *http.Request) {
	resp := boundsResponse{Total: h.Dataset.Len()}
	if resp.Total > 0 {
		x, y := h.Dataset.Bounds()
		resp.X, resp.Y = &x, &y
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := parseView(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts := plot.PNGOptions{X: view.XRange, Y: view.YRange, Title: "Gene Enrichment"}
	if opts.XScale, err = parseScale(q, "xscale"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if opts.YScale, err = parseScale(q, "yscale"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if opts.Width, err = parseSize(q, "width", 900, maxChartSide); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if opts.Height, err = parseSize(q, "height", 600, maxChartSide); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	etag := viewETag(view, "png", string(opts.XScale), string(opts.YScale),
		strconv.Itoa(opts.Width), strconv.Itoa(opts.Height))
	if notModified(w, r, etag) {
		return
	}

	visible := metrics.Visible(h.Observer, metrics.OriginHTTP, h.Dataset, view)
	var buf bytes.Buffer
	if err := plot.RenderPNG(&buf, h.Dataset, visible, opts); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func negotiateFormat(r *http.Request) string {
	wanted := strings.ToLower(r.URL.Query().Get("format"))
	if wanted == "" {
		if strings.Contains(r.Header.Get("Accept"), "text/csv") {
			return formatCSV
		}
		return formatJSON
	}
	switch wanted {
	case formatJSON, formatCSV:
		return wanted
	}
	return ""
}

// notModified sets the ETag and answers 304 when the client already has it.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("ETag", etag)
	for _, tag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		if t := strings.TrimSpace(tag); t == etag || t == "*" {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logx.Errorf("encode response: %v", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)+1))
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
