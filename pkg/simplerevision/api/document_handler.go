package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-revision/pkg/simplerevision"
)

// DocumentHandler handles HTTP requests for documents, revisions,
// content, and diffs
type DocumentHandler struct {
	service simplerevision.Service
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service simplerevision.Service) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Routes returns the routes for documents
func (h *DocumentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateDocument)
	r.Get("/", h.ListDocuments)
	r.Get("/{id}", h.GetDocument)
	r.Put("/{id}", h.CreateRevision)
	r.Get("/{id}/content", h.GetLatestContent)
	r.Get("/{id}/content/version/{version}", h.GetVersionContent)
	r.Get("/{id}/revisions", h.ListRevisions)
	r.Get("/{id}/diff", h.GetDiff)

	return r
}

// CreateDocumentRequest is the request body for creating a document
type CreateDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// DocumentResponse is the response body for a document
type DocumentResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	LatestRevision *RevisionResponse `json:"latest_revision,omitempty"`
}

// RevisionResponse is the response body for a revision
type RevisionResponse struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"document_id"`
	Version       string    `json:"version"`
	StorageKey    string    `json:"storage_key"`
	ChangeSummary string    `json:"change_summary,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContentResponse is the response body for revision content
type ContentResponse struct {
	DocumentID string                         `json:"document_id"`
	Version    string                         `json:"version"`
	Content    simplerevision.DocumentContent `json:"content"`
	CreatedAt  time.Time                      `json:"created_at"`
}

// CreateRevisionRequest is the request body for creating a revision
type CreateRevisionRequest struct {
	Content       simplerevision.DocumentContent `json:"content"`
	ChangeSummary string                         `json:"change_summary,omitempty"`
	CreatedBy     string                         `json:"created_by"`
	VersionType   string                         `json:"version_type,omitempty"`
}

func documentResponse(doc *simplerevision.Document, latest *simplerevision.Revision) DocumentResponse {
	resp := DocumentResponse{
		ID:          doc.ID.String(),
		Title:       doc.Title,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if latest != nil {
		r := revisionResponse(latest)
		resp.LatestRevision = &r
	}
	return resp
}

func revisionResponse(rev *simplerevision.Revision) RevisionResponse {
	return RevisionResponse{
		ID:            rev.ID.String(),
		DocumentID:    rev.DocumentID.String(),
		Version:       rev.Version,
		StorageKey:    rev.StorageKey,
		ChangeSummary: rev.ChangeSummary,
		CreatedBy:     rev.CreatedBy.String(),
		CreatedAt:     rev.CreatedAt,
	}
}

// CreateDocument creates a new document
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.service.CreateDocument(r.Context(), simplerevision.CreateDocumentRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("Failed to create document", "error", err)
		renderError(w, r, err)
		return
	}

	slog.Info("Document created", "document_id", doc.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, documentResponse(doc, nil))
}

// ListDocuments lists all documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context())
	if err != nil {
		slog.Error("Failed to list documents", "error", err)
		renderError(w, r, err)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, documentResponse(doc, nil))
	}
	render.JSON(w, r, resp)
}

// GetDocument returns a document with its latest revision summary
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	doc, err := h.service.GetDocument(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	latest, err := h.service.GetRevision(r.Context(), id, "")
	if err != nil && statusFromError(err) != http.StatusNotFound {
		slog.Error("Failed to resolve latest revision", "document_id", id, "error", err)
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, documentResponse(doc, latest))
}

// CreateRevision creates a new revision for a document
func (h *DocumentHandler) CreateRevision(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	var req CreateRevisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Structural content defects surface during decode; map them
		// like the post-decode validation errors they are.
		if errors.Is(err, simplerevision.ErrInvalidContent) {
			renderError(w, r, err)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var createdBy uuid.UUID
	if req.CreatedBy != "" {
		createdBy, err = uuid.Parse(req.CreatedBy)
		if err != nil {
			slog.Error("Invalid created_by", "created_by", req.CreatedBy, "error", err)
			http.Error(w, "Invalid created_by", http.StatusBadRequest)
			return
		}
	}

	rev, err := h.service.CreateRevision(r.Context(), simplerevision.CreateRevisionRequest{
		DocumentID:    id,
		Content:       req.Content,
		ChangeSummary: req.ChangeSummary,
		CreatedBy:     createdBy,
		VersionType:   simplerevision.VersionType(req.VersionType),
	})
	if err != nil {
		slog.Error("Failed to create revision", "document_id", id, "error", err)
		renderError(w, r, err)
		return
	}

	slog.Info("Revision created", "document_id", id, "version", rev.Version)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, revisionResponse(rev))
}

// GetLatestContent returns the content of the latest revision
func (h *DocumentHandler) GetLatestContent(w http.ResponseWriter, r *http.Request) {
	h.getContent(w, r, "")
}

// GetVersionContent returns the content of a specific revision
func (h *DocumentHandler) GetVersionContent(w http.ResponseWriter, r *http.Request) {
	h.getContent(w, r, chi.URLParam(r, "version"))
}

func (h *DocumentHandler) getContent(w http.ResponseWriter, r *http.Request, version string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	content, rev, err := h.service.GetContent(r.Context(), id, version)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, ContentResponse{
		DocumentID: rev.DocumentID.String(),
		Version:    rev.Version,
		Content:    *content,
		CreatedAt:  rev.CreatedAt,
	})
}

// ListRevisions returns a document's revision history in creation order
func (h *DocumentHandler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	revs, err := h.service.ListRevisions(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]RevisionResponse, 0, len(revs))
	for _, rev := range revs {
		resp = append(resp, revisionResponse(rev))
	}
	render.JSON(w, r, resp)
}

// GetDiff returns the structural diff between two revisions
func (h *DocumentHandler) GetDiff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	fromVersion := r.URL.Query().Get("from_version")
	toVersion := r.URL.Query().Get("to_version")
	if fromVersion == "" || toVersion == "" {
		http.Error(w, "from_version and to_version are required", http.StatusBadRequest)
		return
	}

	diff, err := h.service.GetDiff(r.Context(), id, fromVersion, toVersion)
	if err != nil {
		slog.Error("Failed to compute diff",
			"document_id", id,
			"from_version", fromVersion,
			"to_version", toVersion,
			"error", err)
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, diff)
}
