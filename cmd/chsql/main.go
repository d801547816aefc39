// Package main provides the chsql command-line tool.
package main

import (
	"os"

	"github.com/ku524/clickhouse-datasource/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
