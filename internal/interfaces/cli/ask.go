package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// cliUserID keys the conversation history for command line sessions.
const cliUserID = "cli"

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message...>",
		Short: "Ask the scholarship assistant a question",
		Example: `  scholarai ask "which scholarships close this month?"
  scholarai ask what documents do I need`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			st, err := cliCtx.State(cmd.Context())
			if err != nil {
				return err
			}
			reply, err := st.Assistant.Ask(cmd.Context(), cliUserID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if cliCtx.OutputFormat == OutputJSON {
				return PrintResult(cmd.OutOrStdout(), OutputJSON, reply)
			}
			label := color.New(color.FgCyan, color.Bold).Sprint("Assistant:")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", label, reply.Message.Content)
			return err
		},
	}
}

//Personal.AI order the ending
