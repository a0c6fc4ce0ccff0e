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

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing backups in the destination folder",
	Long: `List backup archives in the destination folder matching the backup name.

Backups are reported newest first, with the creation time parsed from
the archive name where possible.`,
	Example: `  # List backups for the configured backup name
  drivebackup list

  # List backups for a different backup name
  drivebackup list --name nightly-docs`,
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd)
	},
}

func runList(cmd *cobra.Command) {
	backupName := getBackupName(cmd)

	if cfg.DestFolderID == "" {
		utils.PrintError(fmt.Errorf("destination folder id is required"), "list")
		return
	}
	if backupName == "" {
		utils.PrintError(fmt.Errorf("backup name is required"), "list")
		return
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	client, err := driveclient.New(ctx)
	if err != nil {
		utils.PrintError(err, "list")
		return
	}

	if isVerbose(cmd) {
		cmd.Printf("Listing '%s' backups in folder %s\n", backupName, cfg.DestFolderID)
	}

	result, err := backup.ListArchives(ctx, client, cfg.DestFolderID, backupName)
	if err != nil {
		utils.PrintError(err, "list")
		return
	}

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "list")
		return
	}
}

func init() {
	listCmd.Flags().Int("timeout", 300, "Timeout in seconds for the operation")
}
