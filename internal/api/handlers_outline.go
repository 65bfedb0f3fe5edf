package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/browser"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
)

const markdownContentType = "text/markdown; charset=utf-8"

// handleOutlineUpload accepts a document either as multipart field "file"
// or as the raw request body with ?filename= naming its type.
func (s *Server) handleOutlineUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	var (
		filename string
		src      io.Reader
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			if isTooLarge(err) {
				jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
				return
			}
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		filename = header.Filename
		src = file
	} else {
		filename = r.URL.Query().Get("filename")
		if filename == "" {
			jsonError(w, "filename query parameter is required for raw uploads", http.StatusBadRequest)
			return
		}
		src = r.Body
	}

	filename = sanitizeFilename(filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(src, s.cfg.MaxUploadBytes+1))
	if err != nil {
		if isTooLarge(err) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	etag := `"` + contentHashHex(data)[:32] + `"`
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	tree, err := parser.ParseFile(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("parse failed", "filename", filename, "error", err)
		jsonError(w, "failed to parse document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("ETag", etag)
	s.writeOutline(w, tree)
}

// handleOutlineURL renders the outline of a live page.
func (s *Server) handleOutlineURL(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		jsonError(w, "live page fetching is disabled", http.StatusServiceUnavailable)
		return
	}

	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		jsonError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}
	if _, err := browser.ValidateURL(pageURL); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tree, err := s.fetcher.Fetch(r.Context(), pageURL)
	if err != nil {
		s.log.Error("fetch failed", "url", pageURL, "error", err)
		jsonError(w, "failed to load page: "+err.Error(), http.StatusBadGateway)
		return
	}

	s.writeOutline(w, tree)
}

func (s *Server) writeOutline(w http.ResponseWriter, doc doctree.Document) {
	w.Header().Set("Content-Type", markdownContentType)
	sink := outline.WriterSink{W: w}
	if err := sink.Deliver(s.builder.Build(doc)); err != nil {
		s.log.Warn("write response", "error", err)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
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

// contentHashHex computes SHA-256 of content and returns hex string.
func contentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
