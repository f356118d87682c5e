package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const documentsBucket = "intake_documents"

// Document is a stored file opened for download.
type Document struct {
	Name        string
	ContentType string
	Length      int64
	Body        io.ReadCloser
}

// GridFSStore keeps documents in MongoDB and serves them through the API.
type GridFSStore struct {
	db      *mongo.Database
	baseURL string
}

// NewGridFSStore returns URLs of the form <baseURL>/client-intake/documents/<id>.
func NewGridFSStore(db *mongo.Database, baseURL string) *GridFSStore {
	return &GridFSStore{
		db:      db,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// bucket returns a fresh handle; deadlines are per handle.
func (g *GridFSStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(g.db, options.GridFSBucket().SetName(documentsBucket))
	if err != nil {
		return nil, err
	}
	if dl, ok := ctx.Deadline(); ok {
		if err := b.SetWriteDeadline(dl); err != nil {
			return nil, err
		}
		if err := b.SetReadDeadline(dl); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (g *GridFSStore) Upload(ctx context.Context, files []File) ([]string, error) {
	files = withNames(files)
	if len(files) == 0 {
		return []string{}, nil
	}
	b, err := g.bucket(ctx)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": f.ContentType})
		id, err := b.UploadFromStream(CleanName(f.Name), f.Body, opts)
		if err != nil {
			return urls, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		urls = append(urls, g.baseURL+"/client-intake/documents/"+id.Hex())
	}
	return urls, nil
}

// Open streams the document with the given hex id. The caller closes Body.
func (g *GridFSStore) Open(ctx context.Context, id string) (*Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	b, err := g.bucket(ctx)
	if err != nil {
		return nil, err
	}
	stream, err := b.OpenDownloadStream(oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	file := stream.GetFile()
	doc := &Document{
		Name:   file.Name,
		Length: file.Length,
		Body:   stream,
	}
	if len(file.Metadata) > 0 {
		if ct, ok := file.Metadata.Lookup("content_type").StringValueOK(); ok {
			doc.ContentType = ct
		}
	}
	return doc, nil
}
