package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

type schemeTable []scheme.Scheme

func (t schemeTable) Header() []string {
	return []string{"ID", "Title", "Type", "Level", "Deadline", "Categories"}
}

func (t schemeTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, s := range t {
		rows = append(rows, []string{
			s.ID,
			truncate(s.Title, 48),
			string(s.Type),
			string(s.Level),
			s.DeadlineLabel(),
			strings.Join(s.Category, ","),
		})
	}
	return rows
}

func newSchemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "Browse the scheme catalog",
	}
	cmd.AddCommand(newSchemesListCmd(), newSchemesShowCmd())
	return cmd
}

func newSchemesListCmd() *cobra.Command {
	var (
		query    string
		typ      string
		level    string
		category string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schemes matching the given filters",
		Example: `  scholarai schemes list --type scholarship
  scholarai schemes list --query merit --level national -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := scheme.Criteria{
				Text:     query,
				Type:     scheme.Type(strings.ToLower(typ)),
				Level:    scheme.Level(strings.ToLower(level)),
				Category: category,
			}
			if c.Type != "" && !c.Type.IsValid() {
				return errors.Validation("unknown scheme type").WithDetail(typ)
			}
			if c.Level != "" && !c.Level.IsValid() {
				return errors.Validation("unknown scheme level").WithDetail(level)
			}

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			st, err := cliCtx.State(cmd.Context())
			if err != nil {
				return err
			}
			list, err := st.Catalog.List(cmd.Context(), c)
			if err != nil {
				return err
			}
			if cliCtx.OutputFormat == OutputJSON {
				return PrintResult(cmd.OutOrStdout(), OutputJSON, list)
			}
			return PrintResult(cmd.OutOrStdout(), cliCtx.OutputFormat, schemeTable(list))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&query, "query", "q", "", "case-insensitive text matched against title and description")
	f.StringVar(&typ, "type", "", "scheme type (scholarship, grant, loan, other)")
	f.StringVar(&level, "level", "", "scheme level (national, state, local)")
	f.StringVar(&category, "category", "", "beneficiary category")
	return cmd
}

func newSchemesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one scheme with its eligibility and documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			st, err := cliCtx.State(cmd.Context())
			if err != nil {
				return err
			}
			s, err := st.Catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if cliCtx.OutputFormat == OutputJSON {
				return PrintResult(cmd.OutOrStdout(), OutputJSON, s)
			}
			return PrintResult(cmd.OutOrStdout(), cliCtx.OutputFormat, schemeDetail(s))
		},
	}
}

type schemeDetail scheme.Scheme

func (d schemeDetail) Header() []string { return []string{"Field", "Value"} }

func (d schemeDetail) Rows() [][]string {
	return [][]string{
		{"ID", d.ID},
		{"Title", d.Title},
		{"Type", string(d.Type)},
		{"Level", string(d.Level)},
		{"Deadline", scheme.Scheme(d).DeadlineLabel()},
		{"Eligibility", strings.Join(d.Eligibility, "; ")},
		{"Documents", strings.Join(d.Documents, "; ")},
		{"Link", d.Link},
	}
}

//Personal.AI order the ending
