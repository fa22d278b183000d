// Package storagekey builds and parses blob keys for revision content.
//
// The key layout is a stable external contract shared with the UI and
// any out-of-band tooling reading the bucket directly:
//
//	documents/{document_id}/{version}/content.json
package storagekey

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Prefix is the common prefix of all revision content keys.
const Prefix = "documents/"

// contentFileName is the final path component of every revision key.
const contentFileName = "content.json"

// Generator defines the interface for revision key generation
// strategies.
type Generator interface {
	// GenerateKey creates the blob key for a document revision
	GenerateKey(documentID uuid.UUID, version string) string
}

// DocumentVersionGenerator derives keys deterministically from
// (document_id, version). The same pair always yields the same key, so
// the blob store's write-once semantics extend to the revision itself.
type DocumentVersionGenerator struct{}

// NewDocumentVersionGenerator creates the default key generator
func NewDocumentVersionGenerator() *DocumentVersionGenerator {
	return &DocumentVersionGenerator{}
}

func (g *DocumentVersionGenerator) GenerateKey(documentID uuid.UUID, version string) string {
	return fmt.Sprintf("%s%s/%s/%s", Prefix, documentID, version, contentFileName)
}

// ParseKey extracts the document ID and version from a revision
// content key. It returns false for keys that do not follow the
// documents/{id}/{version}/content.json layout, such as foreign
// objects sharing the bucket.
func ParseKey(key string) (documentID uuid.UUID, version string, ok bool) {
	rest, found := strings.CutPrefix(key, Prefix)
	if !found {
		return uuid.Nil, "", false
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[2] != contentFileName {
		return uuid.Nil, "", false
	}

	id, err := uuid.Parse(parts[0])
	if err != nil || parts[1] == "" {
		return uuid.Nil, "", false
	}

	return id, parts[1], true
}
