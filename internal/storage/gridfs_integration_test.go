//go:build integration

package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mentorsurvey/internal/storage"
	"mentorsurvey/internal/testutil/containers"
)

func TestGridFSRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	db := containers.GetManager().GetMongo(t).Database("storage_test")
	require.NoError(t, db.Drop(ctx))

	store := storage.NewGridFSStore(db, "http://localhost:8080/")
	urls, err := store.Upload(ctx, []storage.File{
		{Name: "brief.txt", ContentType: "text/plain", Body: strings.NewReader("project brief")},
	})
	require.NoError(t, err)
	require.Len(t, urls, 1)
	require.True(t, strings.HasPrefix(urls[0], "http://localhost:8080/client-intake/documents/"))

	id := urls[0][strings.LastIndex(urls[0], "/")+1:]
	doc, err := store.Open(ctx, id)
	require.NoError(t, err)
	defer doc.Body.Close()

	body, err := io.ReadAll(doc.Body)
	require.NoError(t, err)
	require.Equal(t, "project brief", string(body))
	require.Equal(t, "text/plain", doc.ContentType)
	require.Equal(t, "brief.txt", doc.Name)

	_, err = store.Open(ctx, "000000000000000000000000")
	require.ErrorIs(t, err, storage.ErrDocumentNotFound)
	_, err = store.Open(ctx, "not-an-id")
	require.ErrorIs(t, err, storage.ErrDocumentNotFound)
}
