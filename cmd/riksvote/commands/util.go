package commands

import (
	"database/sql"
	"io"
	"os"
	devenv "riksvote/dev/env"
	"riksvote/internal/components/chrono"
	"riksvote/internal/db"
	"riksvote/internal/enrich"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if out == nil {
		out = os.Stdout
	}
	t.SetOutputMirror(out)
	return t
}

// openCache opens the sqlite name cache at path (which may start with "<dev_state>"), the
// returned *sql.DB must be closed by the caller.
func openCache(path string) (enrich.SqliteCache, *sql.DB, error) {
	path, err := devenv.ResolvePath(path)
	if err != nil {
		return enrich.SqliteCache{}, nil, err
	}
	database, err := db.OpenDB(path)
	if err != nil {
		return enrich.SqliteCache{}, nil, err
	}
	return enrich.NewSqliteCache(database, chrono.NewStandardImpl()), database, nil
}
