package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/docstat/internal/config"
	"github.com/dgallion1/docstat/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<html><body>
<h1>Fundamentals</h1>
<h2>Networking</h2>
<p>Core terms.</p>
<table><tr><th>Term</th></tr><tr><td>LAN</td></tr><tr><td>WAN</td></tr><tr><td>VPN</td></tr></table>
<h2>Concepts</h2>
<p>Define X. FIXME: add diagram.</p>
</body></html>`

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Defaults()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func uploadRequest(t *testing.T, target, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyze(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze", "ITdictionary.html", sampleHTML, map[string]string{"marker": "FIXME"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "ITdictionary", rep.Source)
	assert.Equal(t, "FIXME", rep.Marker)
	require.Len(t, rep.Breakdown, 2)

	net := rep.Breakdown[0]
	require.NotNil(t, net.TermsCount)
	assert.Equal(t, 3, *net.TermsCount)
	assert.Nil(t, net.TextLength)

	concepts := rep.Breakdown[1]
	assert.Nil(t, concepts.TermsCount)
	assert.Equal(t, report.StatusUnfinished, concepts.Status)

	require.Len(t, rep.Summary, 1)
	assert.Equal(t, 1, rep.Summary[0].SectionsUnfinished)
}

func TestAnalyze_DefaultMarkerFromConfig(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze", "doc.html", sampleHTML, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "TODO", rep.Marker)
	assert.Equal(t, report.StatusDone, rep.Breakdown[1].Status)
}

func TestAnalyze_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze", "scan.pdf", "%PDF", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type: .pdf")
}

func TestAnalyze_MissingFile(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("plain body"))
	req.Header.Set("Content-Type", "text/plain")
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_TooLarge(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) { c.MaxUploadBytes = 16 })
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze", "doc.html", sampleHTML, nil))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyzeCSV(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze/csv?kind=breakdown", "doc.html", sampleHTML, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "doc_breakdown.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Part,Number,Title,Level,Terms_Count,Intro_Length,Text_Length,Quote_Hint_Length,Status\r\n"))
	assert.Contains(t, rec.Body.String(), "Fundamentals,0.1,Networking,h2,3,11,-,-,Done\r\n")

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze/csv", "doc.html", sampleHTML, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fundamentals,2,0,0,0\r\n")

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze/csv?kind=stats", "doc.html", sampleHTML, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) { c.APIKey = "secret" })

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/analyze", "doc.html", sampleHTML, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := uploadRequest(t, "/api/analyze", "doc.html", sampleHTML, nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = uploadRequest(t, "/api/analyze", "doc.html", sampleHTML, nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health stays public.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "dict.html", sanitizeFilename("../../etc/dict.html"))
	assert.Equal(t, "unnamed", sanitizeFilename(""))
}
