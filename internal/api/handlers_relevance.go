package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/docsift/docsift/internal/persona"
)

// handleRelevance accepts a persona descriptor plus one or more PDF
// uploads and runs the relevance pipeline synchronously. Documents that
// fail to parse are skipped, matching batch behavior.
func (s *Server) handleRelevance(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	d := persona.Descriptor{
		Persona:     r.FormValue("persona"),
		JobToBeDone: r.FormValue("job_to_be_done"),
	}
	if err := d.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	// Spool uploads into a temp dir so the batch analyzer can walk them.
	tmpDir, err := os.MkdirTemp("", "docsift-relevance-*")
	if err != nil {
		jsonError(w, "failed to stage uploads", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !isPDF(filename) {
			jsonError(w, "only PDF uploads are supported: "+filename, http.StatusBadRequest)
			return
		}
		if err := saveUpload(fh, filepath.Join(tmpDir, filename), s.cfg.MaxUploadBytes); err != nil {
			jsonError(w, "failed to stage "+filename+": "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	report, summary, err := s.runner.Analyze(r.Context(), tmpDir, d)
	if err != nil {
		s.log.Error("relevance analysis failed", "error", err)
		jsonError(w, "analysis failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if summary.Failed > 0 {
		s.log.Warn("relevance analysis skipped documents", "failed", summary.Failed, "processed", summary.Processed)
	}

	writeJSON(w, http.StatusOK, report)
}

func saveUpload(fh *multipart.FileHeader, dst string, maxBytes int64) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(src, maxBytes+1))
	if err != nil {
		return err
	}
	if n > maxBytes {
		return fmt.Errorf("file exceeds max size (%d bytes)", maxBytes)
	}
	return nil
}
