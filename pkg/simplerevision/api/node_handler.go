package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-revision/pkg/simplerevision"
)

// NodeHandler handles HTTP requests for node-document links
type NodeHandler struct {
	service simplerevision.Service
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(service simplerevision.Service) *NodeHandler {
	return &NodeHandler{service: service}
}

// Routes returns the routes for node-document links
func (h *NodeHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{nodeID}/documents", h.ListNodeDocuments)
	r.Post("/{nodeID}/documents", h.LinkDocument)
	r.Delete("/{nodeID}/documents/{documentID}", h.UnlinkDocument)

	return r
}

// LinkDocumentRequest is the request body for linking a document to a
// node
type LinkDocumentRequest struct {
	DocumentID    string `json:"document_id"`
	RelationType  string `json:"relation_type,omitempty"`
	OrderPosition *int   `json:"order_position,omitempty"`
}

// LinkResponse is the response body for a node-document link
type LinkResponse struct {
	ID            string    `json:"id"`
	NodeID        string    `json:"node_id"`
	DocumentID    string    `json:"document_id"`
	OrderPosition int       `json:"order_position"`
	RelationType  string    `json:"relation_type"`
	CreatedAt     time.Time `json:"created_at"`
}

func linkResponse(link *simplerevision.NodeDocumentLink) LinkResponse {
	return LinkResponse{
		ID:            link.ID.String(),
		NodeID:        link.NodeID.String(),
		DocumentID:    link.DocumentID.String(),
		OrderPosition: link.OrderPosition,
		RelationType:  string(link.RelationType),
		CreatedAt:     link.CreatedAt,
	}
}

// ListNodeDocuments lists a node's document links by order position
func (h *NodeHandler) ListNodeDocuments(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(chi.URLParam(r, "nodeID"))
	if err != nil {
		http.Error(w, "Invalid node ID", http.StatusBadRequest)
		return
	}

	links, err := h.service.ListNodeDocuments(r.Context(), nodeID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]LinkResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, linkResponse(link))
	}
	render.JSON(w, r, resp)
}

// LinkDocument associates a document with a node
func (h *NodeHandler) LinkDocument(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(chi.URLParam(r, "nodeID"))
	if err != nil {
		http.Error(w, "Invalid node ID", http.StatusBadRequest)
		return
	}

	var req LinkDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		slog.Error("Invalid document ID", "document_id", req.DocumentID, "error", err)
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	link, err := h.service.LinkNodeDocument(r.Context(), simplerevision.LinkNodeDocumentRequest{
		NodeID:        nodeID,
		DocumentID:    documentID,
		RelationType:  simplerevision.RelationType(req.RelationType),
		OrderPosition: req.OrderPosition,
	})
	if err != nil {
		slog.Error("Failed to link document", "node_id", nodeID, "document_id", documentID, "error", err)
		renderError(w, r, err)
		return
	}

	slog.Info("Document linked", "node_id", nodeID, "document_id", documentID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, linkResponse(link))
}

// UnlinkDocument removes a node-document association
func (h *NodeHandler) UnlinkDocument(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(chi.URLParam(r, "nodeID"))
	if err != nil {
		http.Error(w, "Invalid node ID", http.StatusBadRequest)
		return
	}

	documentID, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	if err := h.service.UnlinkNodeDocument(r.Context(), nodeID, documentID); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
