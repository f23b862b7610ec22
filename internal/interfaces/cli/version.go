package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		// version needs neither configuration nor state.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate, GoVersion: runtime.Version()}
			format, _ := cmd.Flags().GetString("output")
			if format == OutputJSON {
				return PrintResult(cmd.OutOrStdout(), OutputJSON, info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "scholarai %s (commit %s, built %s, %s)\n",
				info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
			return err
		},
	}
}

//Personal.AI order the ending
