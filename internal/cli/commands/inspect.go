package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ku524/clickhouse-datasource/pkg/sqlrewrite"
	"github.com/spf13/cobra"
)

// clauseReport describes one clause keyword of the inspected query.
type clauseReport struct {
	Keyword string `json:"keyword"`
	Offset  int    `json:"offset"`
	Present bool   `json:"present"`
}

// inspectReport is the full inspection result for a query.
type inspectReport struct {
	Clauses         []clauseReport `json:"clauses"`
	HasLimit        bool           `json:"has_limit"`
	HasOrderBy      bool           `json:"has_order_by"`
	ScalarAggregate bool           `json:"scalar_aggregate"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [sql]",
		Short: "Show the top-level clause layout of a query",
		Long: `Report the byte offset of each recognized top-level clause of a query,
plus whether it carries a LIMIT or ORDER BY and whether it returns a
single aggregate row. Clauses inside subqueries are not reported.`,
		Example: `  chsql inspect "SELECT * FROM logs WHERE level = 'ERROR' LIMIT 10"

  # Machine-readable output
  chsql inspect --json "SELECT count() FROM logs"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			report := inspectQuery(sql)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			renderInspectTable(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON")

	return cmd
}

func inspectQuery(sql string) inspectReport {
	report := inspectReport{
		HasLimit:        sqlrewrite.HasLimit(sql),
		HasOrderBy:      sqlrewrite.HasOrderBy(sql),
		ScalarAggregate: sqlrewrite.IsScalarAggregate(sql),
	}
	for _, keyword := range sqlrewrite.Clauses() {
		pos := sqlrewrite.FindClause(sql, keyword)
		report.Clauses = append(report.Clauses, clauseReport{
			Keyword: keyword,
			Offset:  pos,
			Present: pos >= 0,
		})
	}
	return report
}

func renderInspectTable(w io.Writer, report inspectReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Clause", "Offset"})
	for _, c := range report.Clauses {
		offset := "-"
		if c.Present {
			offset = strconv.Itoa(c.Offset)
		}
		tw.AppendRow(table.Row{c.Keyword, offset})
	}
	tw.Render()

	_, _ = fmt.Fprintf(w, "has limit: %v\n", report.HasLimit)
	_, _ = fmt.Fprintf(w, "has order by: %v\n", report.HasOrderBy)
	_, _ = fmt.Fprintf(w, "scalar aggregate: %v\n", report.ScalarAggregate)
}
