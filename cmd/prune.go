package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"drivebackup/internal/backup"
	"drivebackup/internal/driveclient"
	"drivebackup/pkg/utils"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backups beyond the retention count",
	Long: `Delete backup archives in the destination folder beyond the number of
versions to keep.

The command will:
- List backups matching the backup name, newest first
- Keep the freshest versions up to the retention count
- Delete every older backup, continuing past individual failures
- Return detailed information about the prune operation

WARNING: This operation is irreversible. Deleted backups cannot be recovered.`,
	Example: `  # Prune using the configured retention count
  drivebackup prune

  # Keep only the 3 freshest backups
  drivebackup prune --keep 3

  # Show what would be deleted without deleting
  drivebackup prune --dry-run

  # Skip the confirmation prompt
  drivebackup prune --keep 5 --confirm`,
	Run: func(cmd *cobra.Command, args []string) {
		runPrune(cmd)
	},
}

func runPrune(cmd *cobra.Command) {
	keep, _ := cmd.Flags().GetInt("keep")
	confirm, _ := cmd.Flags().GetBool("confirm")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if keep <= 0 {
		keep = cfg.VersionsToKeep
	}
	backupName := getBackupName(cmd)

	if cfg.DestFolderID == "" {
		utils.PrintError(fmt.Errorf("destination folder id is required"), "prune")
		return
	}
	if backupName == "" {
		utils.PrintError(fmt.Errorf("backup name is required"), "prune")
		return
	}

	// Show confirmation prompt if not in confirm mode and not dry-run
	if !confirm && !dryRun {
		fmt.Printf("WARNING: This will permanently delete '%s' backups beyond the %d freshest in folder '%s'\n",
			backupName, keep, cfg.DestFolderID)
		fmt.Print("Are you sure? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		if response != "yes" && response != "y" && response != "YES" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	client, err := driveclient.New(ctx)
	if err != nil {
		utils.PrintError(err, "prune")
		return
	}

	if isVerbose(cmd) {
		cmd.Printf("Pruning '%s' backups in folder %s, keeping %d\n", backupName, cfg.DestFolderID, keep)
		if dryRun {
			cmd.Println("DRY RUN MODE: No backups will actually be deleted")
		}
	}

	result, err := backup.Prune(ctx, client, cfg.DestFolderID, backupName, keep, dryRun)
	if result != nil {
		if jsonErr := utils.PrintJSON(result); jsonErr != nil {
			utils.PrintError(jsonErr, "prune")
			return
		}
	}
	if err != nil {
		utils.PrintError(err, "prune")
		return
	}

	if isVerbose(cmd) {
		cmd.Println("Prune operation completed successfully")
	}
}

func init() {
	pruneCmd.Flags().IntP("keep", "k", 0, "Override number of backup versions to keep")
	pruneCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	pruneCmd.Flags().Bool("dry-run", false, "Show what would be deleted without actually deleting")
	pruneCmd.Flags().Int("timeout", 1800, "Timeout in seconds for the operation (default: 30 minutes)")

	pruneCmd.SetUsageTemplate(usageTemplate)
}
