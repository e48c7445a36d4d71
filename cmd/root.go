// Package cmd defines the permsweep command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"permsweep/internal/core"
	"permsweep/internal/tui"
	"permsweep/internal/version"
)

// NewRootCmd builds the permsweep root command. The sweep itself takes no
// arguments and runs over the current working directory; the only behavior
// flag is the concurrency level. --json switches the report rendering only.
func NewRootCmd() *cobra.Command {
	var workers int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "permsweep",
		Short: "Normalize ownership and permission bits under the working directory",
		Long: "permsweep recursively normalizes filesystem state under the working\n" +
			"directory: directories to mode 755, regular files to mode 644, ownership\n" +
			"to " + core.DefaultOwner + ":" + core.DefaultGroup + ". Version control, " +
			core.WellKnownDirName + ", " + core.KeepDotfileName + ", " + core.TmpBuildDirName + "\n" +
			"and all symbolic links are skipped. Every affected path is reported with\n" +
			"a reason; individual failures never abort the sweep.",
		Args:          cobra.NoArgs,
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, workers, jsonOut)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", core.DefaultWorkers(),
		"concurrency level for entry processing (minimum 1)")
	cmd.Flags().BoolVar(&jsonOut, "json", false,
		"emit the report as structured JSON instead of text sections")
	return cmd
}

func runSweep(cmd *cobra.Command, workers int, jsonOut bool) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	policy := core.DefaultPolicy()
	policy.Workers = core.ClampWorkers(workers)
	if self, err := os.Executable(); err == nil {
		policy.SelfPath = self
	}

	var ui core.UICallback = tui.NewCallback()
	if jsonOut {
		ui = core.SilentUICallback{}
	}

	sweeper := core.NewDefaultSweeper(policy, ui)
	report, err := sweeper.Run(cmd.Context(), root)
	if err != nil {
		if jsonOut {
			_ = core.EmitJSONError(cmd.OutOrStdout(), core.ErrCodeRootUnreadable, err.Error())
		}
		return err
	}

	if jsonOut {
		return core.EmitJSONReport(cmd.OutOrStdout(), report)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report, tui.Styled()))
	return nil
}

// Execute runs the root command and returns the process exit code. Per-entry
// failures are visible only in the report; the exit code is non-zero only
// when the sweep could not start at all.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
