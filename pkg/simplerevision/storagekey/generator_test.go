package storagekey

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	gen := NewDocumentVersionGenerator()
	id := uuid.MustParse("0b91c3a4-5c1f-4a2e-9a8f-2f2d6f3c4b5a")

	key := gen.GenerateKey(id, "1.2.3")
	assert.Equal(t, "documents/0b91c3a4-5c1f-4a2e-9a8f-2f2d6f3c4b5a/1.2.3/content.json", key)
}

func TestGenerateKeyIsDeterministic(t *testing.T) {
	gen := NewDocumentVersionGenerator()
	id := uuid.New()

	assert.Equal(t, gen.GenerateKey(id, "1.0.0"), gen.GenerateKey(id, "1.0.0"))
	assert.NotEqual(t, gen.GenerateKey(id, "1.0.0"), gen.GenerateKey(id, "1.1.0"))
	assert.NotEqual(t, gen.GenerateKey(id, "1.0.0"), gen.GenerateKey(uuid.New(), "1.0.0"))
}

func TestParseKeyRoundTrip(t *testing.T) {
	gen := NewDocumentVersionGenerator()
	id := uuid.New()

	key := gen.GenerateKey(id, "2.1.0")
	gotID, gotVersion, ok := ParseKey(key)
	require.True(t, ok)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "2.1.0", gotVersion)
}

func TestParseKeyRejectsForeignKeys(t *testing.T) {
	id := uuid.New().String()

	invalid := []string{
		"",
		"other/" + id + "/1.0.0/content.json",
		"documents/" + id + "/1.0.0/other.json",
		"documents/" + id + "/content.json",
		"documents/" + id + "/1.0.0/extra/content.json",
		"documents/not-a-uuid/1.0.0/content.json",
		"documents/" + id + "//content.json",
	}
	for _, key := range invalid {
		_, _, ok := ParseKey(key)
		assert.False(t, ok, "key %q", key)
	}
}
