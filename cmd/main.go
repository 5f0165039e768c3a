package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bmlt-tools/snapshot-server/internal/app"
	"github.com/bmlt-tools/snapshot-server/internal/snapshot"
)

var rootCmd = &cobra.Command{
	Use:   "snapshot-server",
	Short: "Captures versioned snapshots of BMLT root server directories",
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Liveness check",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("pong")
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Run(a.Cfg.HTTPAddr)
	},
}

var snapshotRootServerID string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Snapshot one root server, or all of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()

		if snapshotRootServerID != "" {
			id, err := uuid.Parse(snapshotRootServerID)
			if err != nil {
				return fmt.Errorf("invalid --root-server-id %q: %w", snapshotRootServerID, err)
			}
			report, err := a.Services.Snapshot.RunByID(ctx, id)
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		}

		reports, err := a.Services.Snapshot.RunAll(ctx)
		for _, report := range reports {
			printReport(cmd, report)
		}
		return err
	},
}

func printReport(cmd *cobra.Command, report *snapshot.RunReport) {
	cmd.Printf("snapshot %s: %d service bodies, %d formats, %d meetings, %d rejected\n",
		report.SnapshotID, report.ServiceBodies, report.Formats, report.Meetings, len(report.Rejected))
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotRootServerID, "root-server-id", "", "snapshot only this root server")
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
