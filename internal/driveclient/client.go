package driveclient

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

const listPageSize = 1000

// Client implements API against the Drive v3 service using Application
// Default Credentials. The underlying HTTP transport handles retries
// and backoff; callers treat every failure here as final.
type Client struct {
	service *drive.Service
}

func New(ctx context.Context) (*Client, error) {
	tokenSource, err := google.DefaultTokenSource(ctx, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to load Google credentials: %w", err)
	}

	service, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: service}, nil
}

func (c *Client) ListChildren(ctx context.Context, folderID, pageToken string) ([]Entry, string, error) {
	call := c.service.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
		Fields("nextPageToken, files(id, name, mimeType)").
		PageSize(listPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list children of folder %s: %w", folderID, err)
	}

	return toEntries(list.Files), list.NextPageToken, nil
}

func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	return resp.Body, nil
}

func (c *Client) Upload(ctx context.Context, parentFolderID, name string, content io.Reader) (string, error) {
	file := &drive.File{
		Name:    name,
		Parents: []string{parentFolderID},
	}

	created, err := c.service.Files.Create(file).
		Media(content, googleapi.ContentType("application/gzip")).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	return created.Id, nil
}

func (c *Client) Delete(ctx context.Context, fileID string) error {
	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

func (c *Client) ListBackups(ctx context.Context, folderID, nameContains, pageToken string) ([]Entry, string, error) {
	call := c.service.Files.List().
		Q(fmt.Sprintf("'%s' in parents and name contains '%s' and trashed = false", folderID, nameContains)).
		OrderBy("createdTime desc").
		Fields("nextPageToken, files(id, name, mimeType)").
		PageSize(listPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list backups in folder %s: %w", folderID, err)
	}

	return toEntries(list.Files), list.NextPageToken, nil
}

func toEntries(files []*drive.File) []Entry {
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		entries = append(entries, Entry{
			ID:       f.Id,
			Name:     f.Name,
			IsFolder: f.MimeType == folderMimeType,
		})
	}
	return entries
}
