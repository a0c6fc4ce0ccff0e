package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"drivebackup/internal/driveclient"
	"drivebackup/internal/models"
)

// task is one pending unit of traversal work: a folder to expand or a
// file to fetch, with the relative path built from its ancestors.
type task struct {
	entry   driveclient.Entry
	relPath string
}

// Walk traverses the folder trees rooted at rootFolderIDs depth-first
// and calls fn once per reachable file, in listing order. Each root
// contributes entries with paths relative to the root itself. The walk
// uses an explicit stack and a visited folder set, so arbitrarily deep
// trees and accidental folder cycles cannot exhaust the call stack.
// Any listing or download failure aborts the whole walk.
func Walk(ctx context.Context, api driveclient.API, rootFolderIDs []string, fn func(models.ArchiveEntry) error) error {
	visited := make(map[string]bool)

	var stack []task
	for i := len(rootFolderIDs) - 1; i >= 0; i-- {
		stack = append(stack, task{
			entry: driveclient.Entry{ID: rootFolderIDs[i], IsFolder: true},
		})
	}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !t.entry.IsFolder {
			if err := emit(ctx, api, t, fn); err != nil {
				return err
			}
			continue
		}

		if visited[t.entry.ID] {
			continue
		}
		visited[t.entry.ID] = true

		children, err := listAllChildren(ctx, api, t.entry.ID)
		if err != nil {
			return err
		}

		// Push in reverse so children pop in listing order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, task{
				entry:   children[i],
				relPath: path.Join(t.relPath, children[i].Name),
			})
		}
	}

	return nil
}

func listAllChildren(ctx context.Context, api driveclient.API, folderID string) ([]driveclient.Entry, error) {
	var all []driveclient.Entry
	pageToken := ""
	for {
		entries, nextToken, err := api.ListChildren(ctx, folderID, pageToken)
		if err != nil {
			return nil, fmt.Errorf("listing folder %s: %w", folderID, err)
		}
		all = append(all, entries...)
		if nextToken == "" {
			return all, nil
		}
		pageToken = nextToken
	}
}

// emit fetches one file's content and hands it to fn. The content is
// buffered as a unit because the archive header needs its exact size.
func emit(ctx context.Context, api driveclient.API, t task, fn func(models.ArchiveEntry) error) error {
	rc, err := api.Download(ctx, t.entry.ID)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", t.relPath, err)
	}

	data, err := io.ReadAll(rc)
	closeErr := rc.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", t.relPath, err)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", t.relPath, closeErr)
	}

	return fn(models.ArchiveEntry{
		RelativePath: t.relPath,
		SizeBytes:    int64(len(data)),
		Content:      bytes.NewReader(data),
	})
}
