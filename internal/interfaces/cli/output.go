package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Tabular is implemented by results that can render as a table.  Text
// output reuses the same rows as tab-separated lines.
type Tabular interface {
	Header() []string
	Rows() [][]string
}

// PrintResult writes v in the requested format.  Values that are not
// Tabular fall back to JSON for the table and text formats.
func PrintResult(w io.Writer, format string, v interface{}) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputTable:
		t, ok := v.(Tabular)
		if !ok {
			return PrintResult(w, OutputJSON, v)
		}
		FormatTable(w, t.Header(), t.Rows())
		return nil
	case OutputText:
		t, ok := v.(Tabular)
		if !ok {
			_, err := fmt.Fprintln(w, v)
			return err
		}
		for _, row := range t.Rows() {
			if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Validation("unsupported output format").WithDetail(format)
	}
}

// FormatTable renders rows with a bold header.
func FormatTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetRowLine(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

// PrintError reports err on the command's error stream.  AppErrors print
// their code so scripts can match on it.
func PrintError(cmd *cobra.Command, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		msg := ae.Message
		if ae.Detail != "" {
			msg += ": " + ae.Detail
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [%s] %s\n", red("Error:"), ae.Code, msg)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", red("Error:"), err)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

//Personal.AI order the ending
