// Package storage uploads intake documents and returns the URLs they are
// served from.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("document not found")

// File is one document to upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores files and returns one public URL per stored file, in order.
type Uploader interface {
	Upload(ctx context.Context, files []File) ([]string, error)
}

// CleanName strips directories from a client supplied file name and replaces
// spaces with underscores.
func CleanName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	return strings.ReplaceAll(name, " ", "_")
}

// ObjectKey builds "<prefix>/<random hex>_<name>".
func ObjectKey(prefix, name string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	key := id + "_" + CleanName(name)
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

// withNames drops files without a usable name.
func withNames(files []File) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if CleanName(f.Name) != "" {
			out = append(out, f)
		}
	}
	return out
}
