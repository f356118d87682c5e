package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/service"
	"mentorsurvey/internal/storage"
)

const (
	maxUploadBytes  = 50 << 20
	multipartMemory = 8 << 20
)

// IntakeHandler handles client intake endpoints
type IntakeHandler struct {
	intakeSvc *service.IntakeService
	logger    *slog.Logger
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intakeSvc *service.IntakeService, logger *slog.Logger) *IntakeHandler {
	return &IntakeHandler{intakeSvc: intakeSvc, logger: logger}
}

// Create handles POST /client-intake
func (h *IntakeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form model.IntakeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.intakeSvc.Submit(r.Context(), &form)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// Upload handles POST /client-intake/upload. The multipart body carries the
// form as JSON in "payload" and any number of "documents" files.
func (h *IntakeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	var form model.IntakeForm
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload JSON")
		return
	}

	files, closeAll, err := openParts(r.MultipartForm.File["documents"])
	defer closeAll()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, urls, err := h.intakeSvc.SubmitWithDocuments(r.Context(), &form, files)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "documents": urls})
}

func openParts(headers []*multipart.FileHeader) ([]storage.File, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("open document %q", fh.Filename)
		}
		closers = append(closers, f)
		files = append(files, storage.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return files, closeAll, nil
}

// Latest handles GET /client-intake/latest?limit=n
func (h *IntakeHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultLatestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	items, err := h.intakeSvc.Latest(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Document handles GET /client-intake/documents/{id}
func (h *IntakeHandler) Document(w http.ResponseWriter, r *http.Request) {
	doc, err := h.intakeSvc.OpenDocument(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	defer doc.Body.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Name}))
	if doc.Length > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.Length, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, doc.Body); err != nil {
		h.logger.WarnContext(r.Context(), "document download interrupted", "error", err)
	}
}
