package driveclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FakeClient is an in-memory implementation for unit tests.
type FakeClient struct {
	files    map[string]*FakeFile
	children map[string][]string

	// PageSize caps entries per listing page; 0 means everything in one page.
	PageSize int

	ListErr     map[string]error
	DownloadErr map[string]error
	DeleteErr   map[string]error
	UploadErr   error

	Uploads []UploadRecord
	Deleted []string

	nextID int
	clock  time.Time
}

type FakeFile struct {
	ID      string
	Name    string
	Folder  bool
	Trashed bool
	Data    []byte
	Created time.Time
}

type UploadRecord struct {
	ParentID string
	Name     string
	Data     []byte
}

func NewFake() *FakeClient {
	return &FakeClient{
		files:       map[string]*FakeFile{},
		children:    map[string][]string{},
		ListErr:     map[string]error{},
		DownloadErr: map[string]error{},
		DeleteErr:   map[string]error{},
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *FakeClient) AddFolder(parentID, name string) string {
	return f.add(parentID, name, true, nil)
}

func (f *FakeClient) AddFile(parentID, name string, data []byte) string {
	return f.add(parentID, name, false, data)
}

// AddTrashed seeds a trashed file, which listings must skip.
func (f *FakeClient) AddTrashed(parentID, name string) string {
	id := f.add(parentID, name, false, nil)
	f.files[id].Trashed = true
	return id
}

// Link attaches an existing folder as a child of parentID, letting
// tests build folder graphs with cycles.
func (f *FakeClient) Link(parentID, childID string) {
	f.children[parentID] = append(f.children[parentID], childID)
}

// File exposes a seeded or uploaded file to assertions.
func (f *FakeClient) File(id string) *FakeFile {
	return f.files[id]
}

func (f *FakeClient) add(parentID, name string, folder bool, data []byte) string {
	f.nextID++
	id := "id-" + strconv.Itoa(f.nextID)
	f.clock = f.clock.Add(time.Second)
	f.files[id] = &FakeFile{ID: id, Name: name, Folder: folder, Data: data, Created: f.clock}
	f.children[parentID] = append(f.children[parentID], id)
	return id
}

func (f *FakeClient) ListChildren(ctx context.Context, folderID, pageToken string) ([]Entry, string, error) {
	if err := f.ListErr[folderID]; err != nil {
		return nil, "", err
	}

	var all []Entry
	for _, id := range f.children[folderID] {
		file := f.files[id]
		if file == nil || file.Trashed {
			continue
		}
		all = append(all, Entry{ID: file.ID, Name: file.Name, IsFolder: file.Folder})
	}
	return f.page(all, pageToken)
}

func (f *FakeClient) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := f.DownloadErr[fileID]; err != nil {
		return nil, err
	}

	file := f.files[fileID]
	if file == nil || file.Folder {
		return nil, fmt.Errorf("file not found: %s", fileID)
	}
	return io.NopCloser(bytes.NewReader(file.Data)), nil
}

func (f *FakeClient) Upload(ctx context.Context, parentFolderID, name string, content io.Reader) (string, error) {
	if f.UploadErr != nil {
		return "", f.UploadErr
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	id := f.add(parentFolderID, name, false, data)
	f.Uploads = append(f.Uploads, UploadRecord{ParentID: parentFolderID, Name: name, Data: data})
	return id, nil
}

func (f *FakeClient) Delete(ctx context.Context, fileID string) error {
	if err := f.DeleteErr[fileID]; err != nil {
		return err
	}

	if f.files[fileID] == nil {
		return fmt.Errorf("file not found: %s", fileID)
	}
	delete(f.files, fileID)
	for parentID, ids := range f.children {
		for i, id := range ids {
			if id == fileID {
				f.children[parentID] = append(ids[:i:i], ids[i+1:]...)
				break
			}
		}
	}
	f.Deleted = append(f.Deleted, fileID)
	return nil
}

func (f *FakeClient) ListBackups(ctx context.Context, folderID, nameContains, pageToken string) ([]Entry, string, error) {
	if err := f.ListErr[folderID]; err != nil {
		return nil, "", err
	}

	var matched []*FakeFile
	for _, id := range f.children[folderID] {
		file := f.files[id]
		if file == nil || file.Folder || file.Trashed {
			continue
		}
		if strings.Contains(file.Name, nameContains) {
			matched = append(matched, file)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Created.After(matched[j].Created) })

	all := make([]Entry, 0, len(matched))
	for _, file := range matched {
		all = append(all, Entry{ID: file.ID, Name: file.Name})
	}
	return f.page(all, pageToken)
}

func (f *FakeClient) page(all []Entry, pageToken string) ([]Entry, string, error) {
	offset := 0
	if pageToken != "" {
		parsed, err := strconv.Atoi(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("bad page token %q", pageToken)
		}
		offset = parsed
	}
	if f.PageSize <= 0 || offset+f.PageSize >= len(all) {
		return all[offset:], "", nil
	}
	return all[offset : offset+f.PageSize], strconv.Itoa(offset + f.PageSize), nil
}
