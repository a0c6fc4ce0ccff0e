package driveclient

import (
	"context"
	"io"
)

// Entry is a snapshot of a Drive file or folder taken at listing time.
type Entry struct {
	ID       string
	Name     string
	IsFolder bool
}

// API is a narrow interface over the Drive operations the backup needs.
// Keep it small and focused on what we actually use so it stays mockable.
type API interface {
	// ListChildren returns one page of the non-trashed children of a folder.
	// An empty next token means the listing is exhausted.
	ListChildren(ctx context.Context, folderID, pageToken string) ([]Entry, string, error)

	// Download opens the content of a regular file.
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)

	// Upload creates a file under the given parent folder and returns its id.
	Upload(ctx context.Context, parentFolderID, name string, content io.Reader) (string, error)

	// Delete permanently removes a file.
	Delete(ctx context.Context, fileID string) error

	// ListBackups returns one page of the non-trashed files under folderID
	// whose name contains nameContains, ordered by creation time descending.
	ListBackups(ctx context.Context, folderID, nameContains, pageToken string) ([]Entry, string, error)
}
