package backup

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"time"

	"drivebackup/internal/models"
)

// Builder writes archive entries incrementally to a gzip-compressed tar
// file on disk, so only one file's content is in memory at a time.
// Maximum compression is used; this is a scheduled job, CPU time is
// cheaper than stored bytes.
type Builder struct {
	path      string
	file      *os.File
	gzWriter  *gzip.Writer
	tarWriter *tar.Writer

	fileCount    int
	originalSize int64
	createdAt    time.Time
}

func NewBuilder(path string) (*Builder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}

	gzWriter, err := gzip.NewWriterLevel(file, gzip.BestCompression)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	return &Builder{
		path:      path,
		file:      file,
		gzWriter:  gzWriter,
		tarWriter: tar.NewWriter(gzWriter),
		createdAt: time.Now(),
	}, nil
}

// Add appends one entry. Entries are written in the order they arrive
// and repeated relative paths are not deduplicated; on extraction the
// later copy wins.
func (b *Builder) Add(entry models.ArchiveEntry) error {
	header := &tar.Header{
		Name:     entry.RelativePath,
		Mode:     0644,
		Size:     entry.SizeBytes,
		ModTime:  time.Now(),
		Typeflag: tar.TypeReg,
	}
	if err := b.tarWriter.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", entry.RelativePath, err)
	}

	written, err := io.Copy(b.tarWriter, entry.Content)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", entry.RelativePath, err)
	}
	if written != entry.SizeBytes {
		return fmt.Errorf("short write for %s: wrote %d of %d bytes", entry.RelativePath, written, entry.SizeBytes)
	}

	b.fileCount++
	b.originalSize += entry.SizeBytes
	return nil
}

// Close finalizes the tar stream and the compressor and reports what
// was written. The builder is unusable afterwards.
func (b *Builder) Close() (*models.ArchiveInfo, error) {
	if err := b.tarWriter.Close(); err != nil {
		b.file.Close()
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := b.gzWriter.Close(); err != nil {
		b.file.Close()
		return nil, fmt.Errorf("failed to flush compressor: %w", err)
	}

	fileInfo, err := b.file.Stat()
	if err != nil {
		b.file.Close()
		return nil, fmt.Errorf("failed to get archive info: %w", err)
	}
	compressedSize := fileInfo.Size()

	if err := b.file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive file: %w", err)
	}

	compressionRatio := 0.0
	if b.originalSize > 0 {
		compressionRatio = float64(compressedSize) / float64(b.originalSize)
	}

	return &models.ArchiveInfo{
		ArchivePath:      b.path,
		FileCount:        b.fileCount,
		CompressedSize:   compressedSize,
		OriginalSize:     b.originalSize,
		CompressionRatio: compressionRatio,
		CreatedAt:        b.createdAt,
	}, nil
}
