package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultVersionsToKeep = 5

type Config struct {
	SourceFolderIDs []string
	DestFolderID    string
	BackupName      string
	VersionsToKeep  int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables only")
	}

	versionsToKeep := DefaultVersionsToKeep
	if raw := getEnv("VERSIONS_TO_KEEP", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid VERSIONS_TO_KEEP %q: %w", raw, err)
		}
		versionsToKeep = parsed
	}

	config := &Config{
		SourceFolderIDs: splitFolderIDs(getEnv("SOURCE_FOLDER_IDS", "")),
		DestFolderID:    getEnv("DEST_FOLDER_ID", ""),
		BackupName:      getEnv("BACKUP_NAME", ""),
		VersionsToKeep:  versionsToKeep,
	}

	return config, nil
}

// Validate checks the configuration before a backup run starts.
func (c *Config) Validate() error {
	if len(c.SourceFolderIDs) == 0 {
		return fmt.Errorf("at least one source folder id is required")
	}
	if c.DestFolderID == "" {
		return fmt.Errorf("destination folder id is required")
	}
	if c.BackupName == "" {
		return fmt.Errorf("backup name is required")
	}
	if c.VersionsToKeep <= 0 {
		return fmt.Errorf("versions to keep must be positive, got %d", c.VersionsToKeep)
	}
	return nil
}

func splitFolderIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
