package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drivebackup/internal/driveclient"
	"drivebackup/internal/models"
	"drivebackup/pkg/utils"
)

// Prune deletes backups for the given name beyond the versionsToKeep
// freshest ones. The listing is ordered by creation time descending by
// the storage service, so index versionsToKeep onward is the stale
// tail. Individual deletion failures do not stop the remaining
// deletions; they come back joined in the returned error, alongside the
// partial result. In dry-run mode the candidates are reported but
// nothing is deleted.
func Prune(ctx context.Context, api driveclient.API, destFolderID, backupName string, versionsToKeep int, dryRun bool) (*models.PruneResult, error) {
	if versionsToKeep <= 0 {
		return nil, fmt.Errorf("versions to keep must be positive, got %d", versionsToKeep)
	}

	backups, err := listAllBackups(ctx, api, destFolderID, backupName)
	if err != nil {
		return nil, err
	}

	result := &models.PruneResult{
		DestFolderID:   destFolderID,
		BackupName:     backupName,
		VersionsToKeep: versionsToKeep,
		MatchedCount:   len(backups),
		DryRun:         dryRun,
		OperationTime:  utils.FormatTime(time.Now()),
	}

	if len(backups) <= versionsToKeep {
		return result, nil
	}

	var errs []error
	for _, stale := range backups[versionsToKeep:] {
		if !dryRun {
			if err := api.Delete(ctx, stale.ID); err != nil {
				errs = append(errs, fmt.Errorf("deleting %s: %w", stale.Name, err))
				result.FailedCount++
				continue
			}
		}
		result.DeletedFiles = append(result.DeletedFiles, stale.Name)
		result.DeletedCount++
	}

	return result, errors.Join(errs...)
}

// ListArchives reports the existing backups for a name, newest first,
// with creation times recovered from the archive names where possible.
func ListArchives(ctx context.Context, api driveclient.API, destFolderID, backupName string) (*models.ListResult, error) {
	backups, err := listAllBackups(ctx, api, destFolderID, backupName)
	if err != nil {
		return nil, err
	}

	result := &models.ListResult{
		DestFolderID:  destFolderID,
		BackupName:    backupName,
		TotalFiles:    len(backups),
		OperationTime: utils.FormatTime(time.Now()),
	}
	for _, b := range backups {
		item := models.BackupListItem{FileID: b.ID, FileName: b.Name}
		if createdAt, _, err := utils.ParseBackupFileName(b.Name); err == nil {
			item.CreatedAt = utils.FormatTime(createdAt)
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func listAllBackups(ctx context.Context, api driveclient.API, destFolderID, backupName string) ([]driveclient.Entry, error) {
	var all []driveclient.Entry
	pageToken := ""
	for {
		entries, nextToken, err := api.ListBackups(ctx, destFolderID, backupName, pageToken)
		if err != nil {
			return nil, fmt.Errorf("listing backups: %w", err)
		}
		all = append(all, entries...)
		if nextToken == "" {
			return all, nil
		}
		pageToken = nextToken
	}
}
