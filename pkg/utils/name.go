package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	backupNameTimeLayout = "2006-01-02_15-04-05"
	backupNameSuffix     = ".tar.gz"
)

// BackupFileName builds the archive name for a backup taken at t:
// a UTC timestamp prefix with millisecond precision followed by the
// backup name, so that lexical order matches chronological order.
func BackupFileName(t time.Time, backupName string) string {
	t = t.UTC()
	return fmt.Sprintf("%s-%03d_%s%s", t.Format(backupNameTimeLayout), t.Nanosecond()/1e6, backupName, backupNameSuffix)
}

// ParseBackupFileName recovers the timestamp and backup name from a
// file name produced by BackupFileName. The backup name may itself
// contain underscores.
func ParseBackupFileName(name string) (time.Time, string, error) {
	base, ok := strings.CutSuffix(name, backupNameSuffix)
	if !ok {
		return time.Time{}, "", fmt.Errorf("%s is not a backup archive name", name)
	}

	// The prefix 2006-01-02_15-04-05-000 is 23 bytes, then an underscore.
	if len(base) < 25 || base[19] != '-' || base[23] != '_' {
		return time.Time{}, "", fmt.Errorf("%s has no timestamp prefix", name)
	}

	stamp, err := time.Parse(backupNameTimeLayout, base[:19])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("bad timestamp in %s: %w", name, err)
	}

	millis, err := strconv.Atoi(base[20:23])
	if err != nil || millis < 0 {
		return time.Time{}, "", fmt.Errorf("bad milliseconds in %s", name)
	}

	return stamp.Add(time.Duration(millis) * time.Millisecond), base[24:], nil
}
