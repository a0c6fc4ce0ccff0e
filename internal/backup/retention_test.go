package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"drivebackup/internal/driveclient"
	"drivebackup/pkg/utils"
)

// seedBackups creates count backups named oldest to newest and returns
// their ids in creation order.
func seedBackups(fake *driveclient.FakeClient, destID, backupName string, count int) []string {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := utils.BackupFileName(base.Add(time.Duration(i)*time.Hour), backupName)
		ids = append(ids, fake.AddFile(destID, name, []byte("archive")))
	}
	return ids
}

func TestPruneDeletesOldest(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	ids := seedBackups(fake, dest, "docs", 7)

	result, err := Prune(context.Background(), fake, dest, "docs", 5, false)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if result.MatchedCount != 7 {
		t.Errorf("MatchedCount = %d, want 7", result.MatchedCount)
	}
	if result.DeletedCount != 2 {
		t.Errorf("DeletedCount = %d, want 2", result.DeletedCount)
	}

	// The two oldest go, the five freshest stay.
	for _, id := range ids[:2] {
		if fake.File(id) != nil {
			t.Errorf("old backup %s still exists", id)
		}
	}
	for _, id := range ids[2:] {
		if fake.File(id) == nil {
			t.Errorf("fresh backup %s was deleted", id)
		}
	}
}

func TestPruneNoop(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	seedBackups(fake, dest, "docs", 3)

	result, err := Prune(context.Background(), fake, dest, "docs", 5, false)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if result.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d, want 0", result.DeletedCount)
	}
	if len(fake.Deleted) != 0 {
		t.Errorf("Prune() deleted %d files, want 0", len(fake.Deleted))
	}
}

func TestPruneIdempotent(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	seedBackups(fake, dest, "docs", 7)

	first, err := Prune(context.Background(), fake, dest, "docs", 5, false)
	if err != nil {
		t.Fatalf("first Prune() error = %v", err)
	}
	if first.DeletedCount != 2 {
		t.Errorf("first DeletedCount = %d, want 2", first.DeletedCount)
	}

	second, err := Prune(context.Background(), fake, dest, "docs", 5, false)
	if err != nil {
		t.Fatalf("second Prune() error = %v", err)
	}
	if second.DeletedCount != 0 {
		t.Errorf("second DeletedCount = %d, want 0", second.DeletedCount)
	}
}

func TestPruneContinuesPastDeleteFailure(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	ids := seedBackups(fake, dest, "docs", 7)

	fake.DeleteErr[ids[1]] = errors.New("delete exploded")

	result, err := Prune(context.Background(), fake, dest, "docs", 5, false)
	if err == nil {
		t.Fatalf("Prune() should report the failed deletion")
	}

	if result == nil {
		t.Fatalf("Prune() should return the partial result alongside the error")
	}
	if result.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", result.DeletedCount)
	}
	if result.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", result.FailedCount)
	}

	// The other stale backup must still have been deleted.
	if fake.File(ids[0]) != nil {
		t.Errorf("backup %s should have been deleted despite earlier failure", ids[0])
	}
	if fake.File(ids[1]) == nil {
		t.Errorf("backup %s should survive its failed deletion", ids[1])
	}
}

func TestPruneFollowsPagination(t *testing.T) {
	fake := driveclient.NewFake()
	fake.PageSize = 2
	dest := fake.AddFolder("", "backups")
	seedBackups(fake, dest, "docs", 7)

	result, err := Prune(context.Background(), fake, dest, "docs", 5, false)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if result.MatchedCount != 7 {
		t.Errorf("MatchedCount = %d, want 7", result.MatchedCount)
	}
	if result.DeletedCount != 2 {
		t.Errorf("DeletedCount = %d, want 2", result.DeletedCount)
	}
}

func TestPruneMatchesBackupName(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	seedBackups(fake, dest, "docs", 6)
	otherID := seedBackups(fake, dest, "photos", 1)[0]

	result, err := Prune(context.Background(), fake, dest, "docs", 5, false)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if result.MatchedCount != 6 {
		t.Errorf("MatchedCount = %d, want 6", result.MatchedCount)
	}
	if fake.File(otherID) == nil {
		t.Errorf("backup of a different series was deleted")
	}
}

func TestPruneDryRun(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	seedBackups(fake, dest, "docs", 7)

	result, err := Prune(context.Background(), fake, dest, "docs", 5, true)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if !result.DryRun {
		t.Errorf("DryRun = false, want true")
	}
	if result.DeletedCount != 2 {
		t.Errorf("DeletedCount = %d, want 2 candidates", result.DeletedCount)
	}
	if len(fake.Deleted) != 0 {
		t.Errorf("dry run deleted %d files, want 0", len(fake.Deleted))
	}
}

func TestPruneRejectsInvalidKeep(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")

	for _, keep := range []int{0, -3} {
		if _, err := Prune(context.Background(), fake, dest, "docs", keep, false); err == nil {
			t.Errorf("Prune() with keep=%d should return error", keep)
		}
	}
}

func TestPruneListingError(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	fake.ListErr[dest] = errors.New("listing exploded")

	if _, err := Prune(context.Background(), fake, dest, "docs", 5, false); err == nil {
		t.Errorf("Prune() should propagate listing error")
	}
}

func TestListArchives(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	seedBackups(fake, dest, "docs", 3)

	result, err := ListArchives(context.Background(), fake, dest, "docs")
	if err != nil {
		t.Fatalf("ListArchives() error = %v", err)
	}

	if result.TotalFiles != 3 {
		t.Fatalf("TotalFiles = %d, want 3", result.TotalFiles)
	}

	// Newest first, with creation times recovered from the names.
	for i := 0; i < len(result.Items)-1; i++ {
		if result.Items[i].FileName < result.Items[i+1].FileName {
			t.Errorf("items not ordered newest first: %s before %s",
				result.Items[i].FileName, result.Items[i+1].FileName)
		}
	}
	for i, item := range result.Items {
		if item.CreatedAt == "" {
			t.Errorf("item %d has no parsed creation time", i)
		}
	}
}

func TestListArchivesKeepsUnparsableNames(t *testing.T) {
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	fake.AddFile(dest, "docs-manual-copy.tar.gz", []byte("archive"))

	result, err := ListArchives(context.Background(), fake, dest, "docs")
	if err != nil {
		t.Fatalf("ListArchives() error = %v", err)
	}

	if result.TotalFiles != 1 {
		t.Fatalf("TotalFiles = %d, want 1", result.TotalFiles)
	}
	if result.Items[0].CreatedAt != "" {
		t.Errorf("CreatedAt = %s, want empty for unparsable name", result.Items[0].CreatedAt)
	}
}

func TestSeedNamesSortable(t *testing.T) {
	// Guard for the fixture itself: seeded names must be lexically
	// ordered oldest to newest, matching the naming convention.
	fake := driveclient.NewFake()
	dest := fake.AddFolder("", "backups")
	seedBackups(fake, dest, "docs", 3)

	var names []string
	entries, _, err := fake.ListBackups(context.Background(), dest, "docs", "")
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	for _, e := range entries {
		names = append(names, e.Name)
	}
	for i := 0; i < len(names)-1; i++ {
		if names[i] < names[i+1] {
			t.Fatalf("fixture names not descending: %v", names)
		}
	}
}
