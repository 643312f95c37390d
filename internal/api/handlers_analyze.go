package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docstat/internal/parser"
	"github.com/dgallion1/docstat/internal/report"
)

// handleAnalyze returns the full report for an uploaded document as JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// handleAnalyzeCSV returns one of the two CSV files for an uploaded document,
// selected with ?kind=summary (default) or ?kind=breakdown.
func (s *Server) handleAnalyzeCSV(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "summary"
	}
	if kind != "summary" && kind != "breakdown" {
		jsonError(w, fmt.Sprintf("unknown csv kind: %s", kind), http.StatusBadRequest)
		return
	}

	rep, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	var err error
	if kind == "summary" {
		err = report.WriteSummaryCSV(&buf, rep.Summary)
	} else {
		err = report.WriteBreakdownCSV(&buf, rep.Breakdown)
	}
	if err != nil {
		s.log.Error("csv render failed", "error", err)
		jsonError(w, "failed to render csv", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Source+"_"+kind+".csv"))
	w.Write(buf.Bytes())
}

// analyzeUpload reads the multipart "file" field and analyzes it. On failure
// it has already written the error response.
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}

	doc, err := parser.Read(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("parse failed", "filename", filename, "error", err)
		jsonError(w, "failed to parse document: "+err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}

	marker := r.FormValue("marker")
	if marker == "" {
		marker = s.cfg.Marker
	}
	rep := report.Analyze(doc, marker)

	s.log.Info("analyzed document",
		"filename", filename,
		"parts", len(doc.Parts),
		"nodes", len(rep.Breakdown),
	)
	return rep, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
