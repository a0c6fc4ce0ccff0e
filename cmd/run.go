package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"drivebackup/internal/backup"
	"drivebackup/internal/driveclient"
	"drivebackup/pkg/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full backup of the configured source folders",
	Long: `Run a complete backup cycle.

The command will:
- Recursively walk every configured source folder
- Pack all reachable files into a single tar.gz archive staged locally
- Upload the archive to the destination folder
- Prune old backups beyond the configured number of versions

Pruning is best-effort: a retention failure is logged but does not fail
the run.`,
	Example: `  # Run a backup with the configured settings
  drivebackup run

  # Keep 10 versions instead of the configured count
  drivebackup run --keep 10

  # Run under a different backup name
  drivebackup run --name nightly-docs --verbose`,
	Run: func(cmd *cobra.Command, args []string) {
		runBackup(cmd)
	},
}

func runBackup(cmd *cobra.Command) {
	runCfg := *cfg
	runCfg.BackupName = getBackupName(cmd)
	if keep, _ := cmd.Flags().GetInt("keep"); keep > 0 {
		runCfg.VersionsToKeep = keep
	}

	if err := runCfg.Validate(); err != nil {
		utils.PrintError(err, "run")
		return
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	client, err := driveclient.New(ctx)
	if err != nil {
		utils.PrintError(err, "run")
		return
	}

	if isVerbose(cmd) {
		cmd.Printf("Backing up folders %v into %s\n", runCfg.SourceFolderIDs, runCfg.DestFolderID)
		cmd.Printf("Backup name: %s, versions to keep: %d\n", runCfg.BackupName, runCfg.VersionsToKeep)
	}

	result, err := backup.NewRunner(client, &runCfg).Run(ctx)
	if err != nil {
		utils.PrintError(err, "run")
		return
	}

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "run")
		return
	}

	if isVerbose(cmd) {
		cmd.Println("Backup completed successfully")
	}
}

func init() {
	runCmd.Flags().Int("keep", 0, "Override number of backup versions to keep")
	runCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")

	runCmd.SetUsageTemplate(usageTemplate)
}
