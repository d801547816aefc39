package commands

import (
	"fmt"

	"github.com/ku524/clickhouse-datasource/pkg/sqlrewrite"
	"github.com/spf13/cobra"
)

// NewPaginateCommand creates the paginate command.
func NewPaginateCommand() *cobra.Command {
	var (
		limit   int
		orderBy string
		desc    bool
	)

	cmd := &cobra.Command{
		Use:   "paginate [sql]",
		Short: "Inject a row limit into an unbounded query",
		Long: `Inject a LIMIT clause into a SELECT query that has none.

Queries that already carry a top-level LIMIT, and statements other than
SELECT, are passed through unchanged. With --order-by, an ORDER BY is
injected as well unless the query already has one or returns a single
aggregate row.`,
		Example: `  # Cap an unbounded query at the configured default limit
  chsql paginate "SELECT * FROM logs"

  # Pipe a query in and cap it at 500 rows, newest first
  cat query.sql | chsql paginate --limit 500 --order-by timestamp --desc`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd.Context())
			n := limit
			if n <= 0 {
				n = cfg.DefaultLimit
			}

			sql = sqlrewrite.InjectLimit(sql, n)
			if orderBy != "" {
				order := sqlrewrite.SortAsc
				if desc {
					order = sqlrewrite.SortDesc
				}
				sql = sqlrewrite.InjectOrderBy(sql, orderBy, order)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Row limit to inject (default: configured default_limit)")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "Column to sort by when the query has no ORDER BY")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort the injected ORDER BY descending")

	return cmd
}
