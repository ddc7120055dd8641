package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/easyvol/easyvol/internal/importer"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// previewResponse is the answer to a preview upload: the stored file handle,
// a sample of the parsed content, and the advisory column mapping the client
// may edit before confirming the import.
type previewResponse struct {
	FileID           string                  `json:"file_id"`
	Preview          *importer.Preview       `json:"preview"`
	SuggestedMapping map[string]string       `json:"suggested_mapping"`
	Fields           []importer.CatalogField `json:"fields"`
}

// handlePreview accepts a multipart CSV upload, stores it under the upload
// directory and returns headers, sample rows and a suggested mapping.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("parse upload form: %w", err), http.StatusBadRequest)
		return
	}

	kind := importer.Kind(r.FormValue("import_type"))
	if !kind.Valid() {
		s.respondError(w, r, fmt.Errorf("%w: %q", importer.ErrUnknownKind, kind), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileID, path, err := s.storeUpload(file, header.Filename)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	delimiter := s.delimiter(r.FormValue("delimiter"))

	preview, err := importer.ParseAndPreview(path, delimiter)
	if err != nil {
		os.Remove(path)
		s.respondError(w, r, err, statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{
		FileID:           fileID,
		Preview:          preview,
		SuggestedMapping: importer.SuggestMapping(preview.Headers, kind),
		Fields:           importer.FieldCatalog(kind),
	})
}

// importRequest is the JSON body confirming an import of a previously
// previewed file.
type importRequest struct {
	FileID     string            `json:"file_id"`
	ImportType string            `json:"import_type"`
	Mapping    map[string]string `json:"mapping"`
	Delimiter  string            `json:"delimiter"`
	UserID     int64             `json:"user_id"`
}

// handleImport runs an approved import against a stored upload.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode import request: %w", err), http.StatusBadRequest)
		return
	}

	path, err := s.uploadPath(req.FileID)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.service.Import(r.Context(), importer.Request{
		FilePath:  path,
		FileName:  displayName(req.FileID),
		Kind:      importer.Kind(req.ImportType),
		Mapping:   req.Mapping,
		Delimiter: s.delimiter(req.Delimiter),
		UserID:    req.UserID,
	})
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	// The stored upload has served its purpose.
	os.Remove(path)

	writeJSON(w, http.StatusOK, result)
}

// handleGetLogs lists past import runs with optional type/status filters.
func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	logs, err := s.service.GetLogs(r.Context(), importer.LogFilter{
		ImportType: importer.Kind(q.Get("import_type")),
		Status:     importer.RunStatus(q.Get("status")),
	}, page, perPage)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// handleFieldCatalog returns the importable fields for an entity kind.
func (s *Server) handleFieldCatalog(w http.ResponseWriter, r *http.Request) {
	kind := importer.Kind(chi.URLParam(r, "importType"))
	if !kind.Valid() {
		s.respondError(w, r, fmt.Errorf("%w: %q", importer.ErrUnknownKind, kind), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, importer.FieldCatalog(kind))
}

// storeUpload writes the uploaded file into the upload directory under a
// unique name and returns its handle.
func (s *Server) storeUpload(file io.Reader, originalName string) (fileID, path string, err error) {
	if err := os.MkdirAll(s.cfg.Import.UploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	fileID = uuid.New().String() + "_" + sanitizeFileName(originalName)
	path = filepath.Join(s.cfg.Import.UploadDir, fileID)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("store upload: %w", err)
	}
	return fileID, path, nil
}

// uploadPath resolves a client-supplied file handle to a path inside the
// upload directory, rejecting anything that tries to escape it.
func (s *Server) uploadPath(fileID string) (string, error) {
	if fileID == "" {
		return "", errors.New("no file provided")
	}
	if fileID != filepath.Base(fileID) || strings.Contains(fileID, "..") {
		return "", fmt.Errorf("invalid file id %q", fileID)
	}
	return filepath.Join(s.cfg.Import.UploadDir, fileID), nil
}

// delimiter picks the client's delimiter, falling back to the configured
// default. Only the first rune counts.
func (s *Server) delimiter(raw string) rune {
	if raw == "" {
		raw = s.cfg.Import.DefaultDelimiter
	}
	for _, r := range raw {
		return r
	}
	return ','
}

// sanitizeFileName strips path components and whitespace from an uploaded
// file name.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." {
		name = "upload.csv"
	}
	return name
}

// displayName recovers the original file name from a stored upload handle by
// stripping the UUID prefix.
func displayName(fileID string) string {
	if i := strings.IndexByte(fileID, '_'); i >= 0 && i+1 < len(fileID) {
		return fileID[i+1:]
	}
	return fileID
}
