package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeLinkEndpoints(t *testing.T) {
	server := setupServer(t)
	doc := createDocument(t, server, "Linked Doc")
	nodeID := uuid.New().String()

	t.Run("link document", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/nodes/"+nodeID+"/documents", LinkDocumentRequest{
			DocumentID: doc.ID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var link LinkResponse
		decodeJSON(t, resp, &link)
		assert.Equal(t, nodeID, link.NodeID)
		assert.Equal(t, doc.ID, link.DocumentID)
		assert.Equal(t, "primary", link.RelationType)
		assert.Equal(t, 0, link.OrderPosition)
	})

	t.Run("duplicate link conflicts", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/nodes/"+nodeID+"/documents", LinkDocumentRequest{
			DocumentID: doc.ID,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("link unknown document is not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/nodes/"+nodeID+"/documents", LinkDocumentRequest{
			DocumentID: uuid.New().String(),
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list links", func(t *testing.T) {
		doc2 := createDocument(t, server, "Second Doc")
		resp := doJSON(t, http.MethodPost, server.URL+"/nodes/"+nodeID+"/documents", LinkDocumentRequest{
			DocumentID:   doc2.ID,
			RelationType: "reference",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, http.MethodGet, server.URL+"/nodes/"+nodeID+"/documents", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var links []LinkResponse
		decodeJSON(t, resp, &links)
		require.Len(t, links, 2)
		assert.Equal(t, doc.ID, links[0].DocumentID)
		assert.Equal(t, doc2.ID, links[1].DocumentID)
		assert.Equal(t, "reference", links[1].RelationType)
	})

	t.Run("unlink", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, server.URL+"/nodes/"+nodeID+"/documents/"+doc.ID, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("unlink again is not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, server.URL+"/nodes/"+nodeID+"/documents/"+doc.ID, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unlink leaves the document", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/documents/"+doc.ID, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid node id is bad request", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/nodes/not-a-uuid/documents", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
