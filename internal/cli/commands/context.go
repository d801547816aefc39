package commands

import (
	"fmt"
	"strings"

	"github.com/ku524/clickhouse-datasource/pkg/sqlrewrite"
	"github.com/spf13/cobra"
)

// NewContextCommand creates the context command.
func NewContextCommand() *cobra.Command {
	var (
		timeColumn string
		timeExpr   string
		direction  string
		limit      int
		filters    []string
	)

	cmd := &cobra.Command{
		Use:   "context [sql]",
		Short: "Build a time-bounded context query around a log line",
		Long: `Rewrite a query into a context query: rows before or after a reference
timestamp, matching the given equality filters, sorted by the time column
and capped to a page of results.

Any ORDER BY or LIMIT already present in the query is replaced.`,
		Example: `  # Ten log lines at or before the anchor line
  chsql context "SELECT * FROM logs" \
      --time "toDateTime64('2024-01-01 12:00:00', 3)" \
      --filter service=api --limit 10

  # Page forward from the anchor instead
  chsql context "SELECT * FROM logs" --time "T0" --direction forward`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			if timeExpr == "" {
				return fmt.Errorf("--time is required")
			}

			dir := sqlrewrite.Direction(direction)
			if dir != sqlrewrite.DirectionForward && dir != sqlrewrite.DirectionBackward {
				return fmt.Errorf("invalid direction %q: expected forward or backward", direction)
			}

			cfg := GetConfig(cmd.Context())
			col := timeColumn
			if col == "" {
				col = cfg.TimeColumn
			}
			n := limit
			if n <= 0 {
				n = cfg.DefaultLimit
			}

			opts := sqlrewrite.ContextOptions{
				TimeColumn: col,
				TimeExpr:   timeExpr,
				Direction:  dir,
				Limit:      n,
			}
			for _, f := range filters {
				column, value, ok := strings.Cut(f, "=")
				if !ok {
					return fmt.Errorf("invalid filter %q: expected column=value", f)
				}
				opts.Filters = append(opts.Filters, sqlrewrite.ContextFilter{Column: column, Value: value})
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), sqlrewrite.BuildContextQuery(sql, opts))
			return nil
		},
	}

	cmd.Flags().StringVar(&timeColumn, "time-column", "", "Time column to bound on (default: configured time_column)")
	cmd.Flags().StringVar(&timeExpr, "time", "", "Reference timestamp expression (required)")
	cmd.Flags().StringVar(&direction, "direction", string(sqlrewrite.DirectionBackward), "Paging direction: forward or backward")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Page size (default: configured default_limit)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Equality filter as column=value (repeatable)")

	return cmd
}
