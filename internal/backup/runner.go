package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"drivebackup/config"
	"drivebackup/internal/driveclient"
	"drivebackup/internal/models"
	"drivebackup/pkg/utils"
)

// Runner drives one full backup run: walk the source trees, build the
// staged archive, upload it, then prune stale backups.
type Runner struct {
	api driveclient.API
	cfg *config.Config
}

func NewRunner(api driveclient.API, cfg *config.Config) *Runner {
	return &Runner{api: api, cfg: cfg}
}

// Run performs a single backup. The staging archive is removed on every
// exit path, and the upload only happens once the archive is fully
// finalized. Retention failures are logged and reflected in the result
// but never fail the run; any failure before that aborts it.
func (r *Runner) Run(ctx context.Context) (*models.RunResult, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	startTime := time.Now()
	archiveName := utils.BackupFileName(startTime, r.cfg.BackupName)

	staging, err := os.CreateTemp("", "drivebackup-*.tar.gz")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	stagingPath := staging.Name()
	staging.Close()
	defer utils.CleanupTempFile(stagingPath)

	info, err := r.buildArchive(ctx, stagingPath)
	if err != nil {
		return nil, err
	}

	fileID, err := r.upload(ctx, stagingPath, archiveName)
	if err != nil {
		return nil, err
	}

	result := &models.RunResult{
		ArchiveName:         archiveName,
		DestFolderID:        r.cfg.DestFolderID,
		RemoteFileID:        fileID,
		FileCount:           info.FileCount,
		OriginalSizeBytes:   info.OriginalSize,
		CompressedSizeBytes: info.CompressedSize,
		CompressedSizeHuman: utils.FormatBytes(info.CompressedSize),
		OperationTime:       utils.FormatTime(startTime),
	}

	pruneResult, err := Prune(ctx, r.api, r.cfg.DestFolderID, r.cfg.BackupName, r.cfg.VersionsToKeep, false)
	if err != nil {
		slog.Warn("pruning old backups failed", "error", err)
		result.PruneFailed = true
	}
	if pruneResult != nil {
		result.PrunedCount = pruneResult.DeletedCount
	}

	result.RunDuration = time.Since(startTime).String()
	return result, nil
}

func (r *Runner) buildArchive(ctx context.Context, stagingPath string) (*models.ArchiveInfo, error) {
	builder, err := NewBuilder(stagingPath)
	if err != nil {
		return nil, err
	}

	if err := Walk(ctx, r.api, r.cfg.SourceFolderIDs, builder.Add); err != nil {
		builder.Close()
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}

	return builder.Close()
}

func (r *Runner) upload(ctx context.Context, stagingPath, archiveName string) (string, error) {
	file, err := os.Open(stagingPath)
	if err != nil {
		return "", fmt.Errorf("failed to open staging archive: %w", err)
	}
	defer file.Close()

	fileID, err := r.api.Upload(ctx, r.cfg.DestFolderID, archiveName, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", archiveName, err)
	}
	return fileID, nil
}
