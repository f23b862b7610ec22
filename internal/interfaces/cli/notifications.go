package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

const dateLayout = "2006-01-02"

type notificationTable []notification.Notification

func (t notificationTable) Header() []string {
	return []string{"Scheme", "Kind", "Message"}
}

func (t notificationTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, n := range t {
		rows = append(rows, []string{n.SchemeID, string(n.Kind), n.Message})
	}
	return rows
}

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notify"},
		Short:   "Inspect deadline reminders",
	}
	cmd.AddCommand(newNotificationsScanCmd())
	return cmd
}

func newNotificationsScanCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one deadline scan and print the reminders it creates",
		Example: `  scholarai notifications scan
  scholarai notifications scan --now 2025-03-20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if at != "" {
				t, err := time.Parse(dateLayout, at)
				if err != nil {
					return errors.Validation("--now must be YYYY-MM-DD").WithDetail(at)
				}
				now = t
			}

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			st, err := cliCtx.State(cmd.Context())
			if err != nil {
				return err
			}
			res, err := st.Notifier.Scan(cmd.Context(), now)
			if err != nil {
				return err
			}
			if cliCtx.OutputFormat == OutputJSON {
				return PrintResult(cmd.OutOrStdout(), OutputJSON, res)
			}
			return PrintResult(cmd.OutOrStdout(), cliCtx.OutputFormat, notificationTable(res.Created))
		},
	}
	cmd.Flags().StringVar(&at, "now", "", "evaluate deadlines as of this date (YYYY-MM-DD, UTC)")
	return cmd
}

//Personal.AI order the ending
