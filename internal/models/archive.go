package models

import (
	"io"
	"time"
)

// ArchiveEntry is one file streamed out of the folder tree walker and
// into the archive builder. Content is readable exactly once.
type ArchiveEntry struct {
	RelativePath string
	SizeBytes    int64
	Content      io.Reader
}

type ArchiveInfo struct {
	ArchivePath      string    `json:"archive_path"`
	FileCount        int       `json:"file_count"`
	CompressedSize   int64     `json:"compressed_size"`
	OriginalSize     int64     `json:"original_size"`
	CompressionRatio float64   `json:"compression_ratio"`
	CreatedAt        time.Time `json:"created_at"`
}

type RunResult struct {
	ArchiveName         string `json:"archive_name"`
	DestFolderID        string `json:"dest_folder_id"`
	RemoteFileID        string `json:"remote_file_id"`
	FileCount           int    `json:"file_count"`
	OriginalSizeBytes   int64  `json:"original_size_bytes"`
	CompressedSizeBytes int64  `json:"compressed_size_bytes"`
	CompressedSizeHuman string `json:"compressed_size_human"`
	OperationTime       string `json:"operation_time"`
	RunDuration         string `json:"run_duration"`
	PrunedCount         int    `json:"pruned_count"`
	PruneFailed         bool   `json:"prune_failed,omitempty"`
}
