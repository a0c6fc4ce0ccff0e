package models

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

type PruneResult struct {
	DestFolderID   string   `json:"dest_folder_id"`
	BackupName     string   `json:"backup_name"`
	VersionsToKeep int      `json:"versions_to_keep"`
	MatchedCount   int      `json:"matched_count"`
	DeletedFiles   []string `json:"deleted_files"`
	DeletedCount   int      `json:"deleted_count"`
	FailedCount    int      `json:"failed_count"`
	DryRun         bool     `json:"dry_run,omitempty"`
	OperationTime  string   `json:"operation_time"`
}

type BackupListItem struct {
	FileID    string `json:"file_id"`
	FileName  string `json:"file_name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type ListResult struct {
	DestFolderID  string           `json:"dest_folder_id"`
	BackupName    string           `json:"backup_name"`
	Items         []BackupListItem `json:"items"`
	TotalFiles    int              `json:"total_files"`
	OperationTime string           `json:"operation_time"`
}
