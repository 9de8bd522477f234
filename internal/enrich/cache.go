package enrich

import (
	"context"
	"database/sql"
	"errors"
	"riksvote/internal/components/chrono"
	"riksvote/internal/dataset"
	"riksvote/internal/db"
	"riksvote/internal/scrapers/riksdagen"
)

// NameCache remembers resolved voting names across runs.
type NameCache interface {
	Lookup(ctx context.Context, dokID string) (name string, ok bool, err error)
	Note(ctx context.Context, dokID, name string) error
}

// SqliteCache is a NameCache backed by the voting_name table.
type SqliteCache struct {
	db   *sql.DB
	qry  *db.Queries
	time chrono.TimeAPI
}

func NewSqliteCache(database *sql.DB, time chrono.TimeAPI) SqliteCache {
	return SqliteCache{
		db:   database,
		qry:  db.New(database),
		time: time,
	}
}

func (c SqliteCache) Lookup(ctx context.Context, dokID string) (string, bool, error) {
	row, err := c.qry.GetVotingName(ctx, dokID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Name, row.Name != "", nil
}

func (c SqliteCache) Note(ctx context.Context, dokID, name string) error {
	return c.qry.NoteVotingName(ctx, db.NoteVotingNameParams{
		DokID:     dokID,
		Name:      name,
		Url:       riksdagen.VotingURL(dokID),
		FetchedAt: c.time.Now().Unix(),
	})
}

// Seed notes the name of every named voting event in ds, it returns the amount of names noted.
func (c SqliteCache) Seed(ctx context.Context, ds dataset.Dataset) (int, error) {
	noted := 0
	err := db.InTx(ctx, c.db, func(qry *db.Queries) error {
		noted = 0
		for _, event := range dataset.Group(ds.Rows) {
			if event.Name == "" {
				continue
			}
			err := qry.NoteVotingName(ctx, db.NoteVotingNameParams{
				DokID:     event.ID,
				Name:      event.Name,
				Url:       riksdagen.VotingURL(event.ID),
				FetchedAt: c.time.Now().Unix(),
			})
			if err != nil {
				return err
			}
			noted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return noted, nil
}

// Count returns the amount of cached names.
func (c SqliteCache) Count(ctx context.Context) (int64, error) {
	return c.qry.CountVotingNames(ctx)
}
