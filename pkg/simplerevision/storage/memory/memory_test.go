package memory

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-revision/pkg/simplerevision"
)

func TestPutGetDelete(t *testing.T) {
	backend := New()
	ctx := context.Background()

	key := "documents/doc-1/1.0.0/content.json"
	require.NoError(t, backend.Put(ctx, key, strings.NewReader("hello")))

	reader, err := backend.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "hello", string(data))

	require.NoError(t, backend.Delete(ctx, key))

	_, err = backend.Get(ctx, key)
	assert.ErrorIs(t, err, simplerevision.ErrBlobNotFound)

	err = backend.Delete(ctx, key)
	assert.ErrorIs(t, err, simplerevision.ErrBlobNotFound)
}

func TestPutIsWriteOnce(t *testing.T) {
	backend := New()
	ctx := context.Background()

	key := "documents/doc-1/1.0.0/content.json"
	require.NoError(t, backend.Put(ctx, key, strings.NewReader("first")))

	err := backend.Put(ctx, key, strings.NewReader("second"))
	assert.ErrorIs(t, err, simplerevision.ErrBlobExists)

	// The original content must survive the rejected write.
	reader, err := backend.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	reader.Close()
	assert.Equal(t, "first", string(data))
}

func TestConcurrentPutSingleWinner(t *testing.T) {
	backend := New()
	ctx := context.Background()
	key := "documents/doc-1/1.0.0/content.json"

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	start := make(chan struct{})
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = backend.Put(ctx, key, strings.NewReader("payload"))
		}(i)
	}
	close(start)
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, simplerevision.ErrBlobExists)
		}
	}
	assert.Equal(t, 1, successes)
}

func TestList(t *testing.T) {
	backend := New()
	ctx := context.Background()

	keys := []string{
		"documents/doc-1/1.0.0/content.json",
		"documents/doc-1/1.1.0/content.json",
		"documents/doc-2/1.0.0/content.json",
		"other/file.txt",
	}
	for _, key := range keys {
		require.NoError(t, backend.Put(ctx, key, strings.NewReader("x")))
	}

	got, err := backend.List(ctx, "documents/doc-1/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"documents/doc-1/1.0.0/content.json",
		"documents/doc-1/1.1.0/content.json",
	}, got)

	all, err := backend.List(ctx, "documents/")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := backend.List(ctx, "missing/")
	require.NoError(t, err)
	assert.Empty(t, none)
}
