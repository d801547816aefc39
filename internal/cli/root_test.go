package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) string {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"paginate", "context", "inspect", "serve", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestPaginateCommandInjectsLimit(t *testing.T) {
	out := executeCommand(t, "paginate", "--limit", "100", "SELECT * FROM logs")
	assert.Equal(t, "SELECT * FROM logs LIMIT 100\n", out)
}

func TestPaginateCommandLeavesBoundedQueryAlone(t *testing.T) {
	out := executeCommand(t, "paginate", "--limit", "100", "SELECT * FROM logs LIMIT 5")
	assert.Equal(t, "SELECT * FROM logs LIMIT 5\n", out)
}

func TestPaginateCommandInjectsOrderBy(t *testing.T) {
	out := executeCommand(t, "paginate", "--limit", "10", "--order-by", "ts", "--desc", "SELECT * FROM logs")
	assert.Equal(t, "SELECT * FROM logs ORDER BY \"ts\" DESC LIMIT 10\n", out)
}

func TestPaginateCommandReadsStdin(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("SELECT * FROM logs\n"))
	cmd.SetArgs([]string{"paginate", "--limit", "7"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "SELECT * FROM logs LIMIT 7\n", out.String())
}

func TestContextCommandBuildsQuery(t *testing.T) {
	out := executeCommand(t, "context",
		"--time", "T0",
		"--time-column", "ts",
		"--limit", "10",
		"--filter", "service=api",
		"SELECT * FROM logs",
	)
	assert.Equal(t, `SELECT * FROM logs WHERE "service" = 'api' AND "ts" <= T0 ORDER BY "ts" DESC LIMIT 10`+"\n", out)
}

func TestInspectCommandJSON(t *testing.T) {
	out := executeCommand(t, "inspect", "--json", "SELECT count() FROM logs")

	assert.Contains(t, out, `"scalar_aggregate": true`)
	assert.Contains(t, out, `"has_limit": false`)
}

func TestInspectCommandTable(t *testing.T) {
	out := executeCommand(t, "inspect", "SELECT * FROM logs LIMIT 10")

	assert.Contains(t, out, "LIMIT")
	assert.Contains(t, out, "has limit: true")
	assert.Contains(t, out, "scalar aggregate: false")
}

func TestVersionFlag(t *testing.T) {
	out := executeCommand(t, "--version")
	assert.Contains(t, out, "chsql")
	assert.Contains(t, out, Version)
}
