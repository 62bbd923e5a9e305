package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/moneyflow/pkg/buildinfo"
	"github.com/matzehuels/moneyflow/pkg/cache"
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/pipeline"
)

// NamespaceHeader selects a per-client cache namespace.
const NamespaceHeader = "X-Moneyflow-Namespace"

// CacheHeader reports "hit" or "miss" for the served result.
const CacheHeader = "X-Cache"

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	runner, err := s.runnerFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := readOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts.Logger = runner.Logger
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	wire, g, err := runner.Parse(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Currency == "" {
		opts.Currency = wire.Currency
	}

	gl, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(gl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	runner, err := s.runnerFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := readOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(CacheHeader, cacheStatus(result.CacheInfo.RenderHit))
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// runnerFor returns the shared runner, or a copy with scoped keys when the
// request names a cache namespace.
func (s *Server) runnerFor(r *http.Request) (*pipeline.Runner, error) {
	ns := r.Header.Get(NamespaceHeader)
	if ns == "" {
		return s.runner, nil
	}
	if err := errors.ValidateKeyPrefix(ns); err != nil {
		return nil, err
	}
	return &pipeline.Runner{
		Cache:  s.runner.Cache,
		Keyer:  cache.NewScopedKeyer(s.runner.Keyer, "ns:"+ns+":"),
		Logger: s.runner.Logger,
	}, nil
}

// readOptions reads the body and query parameters shared by both
// pipeline routes.
func readOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodyBytes)
		}
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) == 0 {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		InputData:   body,
		InputFormat: bodyFormat(r.Header.Get("Content-Type")),
		VizType:     q.Get("viz"),
		Style:       q.Get("style"),
		Currency:    q.Get("currency"),
		Refresh:     q.Get("refresh") == "true",
		Tooltips:    q.Get("tooltips") == "true",
		HideLabels:  q.Get("labels") == "false",
		Detailed:    q.Get("detailed") == "true",
	}
	if opts.Width, err = floatParam(q.Get("width"), "width", errors.ErrCodeInvalidDimension); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), "height", errors.ErrCodeInvalidDimension); err != nil {
		return opts, err
	}
	if opts.Curvature, err = floatParam(q.Get("curvature"), "curvature", errors.ErrCodeInvalidInput); err != nil {
		return opts, err
	}
	return opts, nil
}

func floatParam(raw, name string, code errors.Code) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(code, "%s must be a number, got %q", name, raw)
	}
	return v, nil
}

// bodyFormat picks the graph decoder from a Content-Type header.
func bodyFormat(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return graph.FormatJSON
	}
	if strings.Contains(mt, "yaml") {
		return graph.FormatYAML
	}
	return graph.FormatJSON
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeTimeout), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := string(errors.GetCode(err))
	switch {
	case code != "":
	case status == http.StatusGatewayTimeout:
		code = string(errors.ErrCodeTimeout)
	default:
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
