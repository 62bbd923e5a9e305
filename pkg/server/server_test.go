package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/moneyflow/pkg/cache"
	"github.com/matzehuels/moneyflow/pkg/config"
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/pipeline"
)

const budget = `{
  "labels": ["Salary", "Budget", "Rent", "Food"],
  "sources": [0, 1, 1],
  "targets": [1, 2, 3],
  "values": [3000, 1800, 1200]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil, nil), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body healthBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/layout?width=1000&height=500", "application/json", budget, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %+v", resp.StatusCode, decodeError(t, resp))
	}
	var gl graph.Layout
	if err := json.NewDecoder(resp.Body).Decode(&gl); err != nil {
		t.Fatal(err)
	}
	if gl.VizType != graph.VizTypeSankey || gl.Width != 1000 || gl.Height != 500 {
		t.Errorf("got %s %gx%g, want sankey 1000x500", gl.VizType, gl.Width, gl.Height)
	}
	if len(gl.Nodes) != 4 || gl.MaxColumn != 2 {
		t.Errorf("got %d nodes, max column %d", len(gl.Nodes), gl.MaxColumn)
	}
	if resp.Header.Get(CacheHeader) != "miss" {
		t.Errorf("%s = %q, want miss", CacheHeader, resp.Header.Get(CacheHeader))
	}

	again := post(t, srv.URL+"/v1/layout?width=1000&height=500", "application/json", budget, nil)
	if again.Header.Get(CacheHeader) != "hit" {
		t.Errorf("second request %s = %q, want hit", CacheHeader, again.Header.Get(CacheHeader))
	}
}

func TestLayoutYAML(t *testing.T) {
	srv := newTestServer(t)
	body := "labels: [A, B]\nsources: [0]\ntargets: [1]\nvalues: [10]\n"
	resp := post(t, srv.URL+"/v1/layout", "application/yaml", body, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLayoutNodelinkDetailed(t *testing.T) {
	srv := newTestServer(t)

	for _, tt := range []struct {
		query string
		want  bool
	}{
		{"?viz=nodelink", false},
		{"?viz=nodelink&detailed=true", true},
	} {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/layout"+tt.query, "application/json", budget, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200: %+v", resp.StatusCode, decodeError(t, resp))
			}
			var gl graph.Layout
			if err := json.NewDecoder(resp.Body).Decode(&gl); err != nil {
				t.Fatal(err)
			}
			if got := strings.Contains(gl.DOT, "column: "); got != tt.want {
				t.Errorf("detailed labels = %v, want %v:\n%s", got, tt.want, gl.DOT)
			}
		})
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=svg&style=gradient&tooltips=true", "image/svg+xml", "<svg"},
		{"?format=json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/render"+tt.query, "application/json", budget, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200: %+v", resp.StatusCode, decodeError(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(resp.Body); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("body starts %.40q, want %q", buf.String(), tt.prefix)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed json", "/v1/layout", "{", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"empty body", "/v1/layout", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"ragged arrays", "/v1/layout", `{"labels":["a"],"sources":[0,0],"targets":[0]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad width", "/v1/layout?width=wide", budget, http.StatusBadRequest, errors.ErrCodeInvalidDimension},
		{"negative height", "/v1/layout?height=-5", budget, http.StatusBadRequest, errors.ErrCodeInvalidDimension},
		{"bad style", "/v1/layout?style=neon", budget, http.StatusBadRequest, errors.ErrCodeInvalidStyle},
		{"bad format", "/v1/render?format=gif", budget, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad viz", "/v1/render?viz=treemap", budget, http.StatusBadRequest, errors.ErrCodeInvalidVizType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, "application/json", tt.body, nil)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decodeError(t, resp); body.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestRequestIDReused(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/layout", "application/json", budget, http.Header{RequestIDHeader: {"abc-123"}})
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("%s = %q, want abc-123", RequestIDHeader, got)
	}
}

func TestNamespace(t *testing.T) {
	srv := newTestServer(t)

	post(t, srv.URL+"/v1/layout", "application/json", budget, http.Header{NamespaceHeader: {"alice"}})
	resp := post(t, srv.URL+"/v1/layout", "application/json", budget, http.Header{NamespaceHeader: {"bob"}})
	if resp.Header.Get(CacheHeader) != "miss" {
		t.Error("namespaces should not share cache entries")
	}

	bad := post(t, srv.URL+"/v1/layout", "application/json", budget, http.Header{NamespaceHeader: {"a/b"}})
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid namespace status = %d, want 400", bad.StatusCode)
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v2/nothing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
		{errors.New(errors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.Wrap(errors.ErrCodeCache, context.DeadlineExceeded, "x"), http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestBodyFormat(t *testing.T) {
	tests := map[string]string{
		"application/json":              graph.FormatJSON,
		"application/yaml":              graph.FormatYAML,
		"application/x-yaml; charset=1": graph.FormatYAML,
		"text/yaml":                     graph.FormatYAML,
		"":                              graph.FormatJSON,
	}
	for ct, want := range tests {
		if got := bodyFormat(ct); got != want {
			t.Errorf("bodyFormat(%q) = %q, want %q", ct, got, want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(nil, nil).ListenAndServe(ctx, config.ServerConfig{Addr: addr, ReadTimeout: time.Second, WriteTimeout: time.Second})
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
