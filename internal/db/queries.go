package db

import (
	"context"
)

type VotingName struct {
	DokID     string
	Name      string
	Url       string
	FetchedAt int64
}

const getVotingName = `-- name: GetVotingName :one
select dok_id, name, url, fetched_at from voting_name
where dok_id = ?
`

func (q *Queries) GetVotingName(ctx context.Context, dokID string) (VotingName, error) {
	row := q.db.QueryRowContext(ctx, getVotingName, dokID)
	var i VotingName
	err := row.Scan(
		&i.DokID,
		&i.Name,
		&i.Url,
		&i.FetchedAt,
	)
	return i, err
}

const noteVotingName = `-- name: NoteVotingName :exec
insert into voting_name(dok_id, name, url, fetched_at)
values (?, ?, ?, ?)
on conflict(dok_id) do update set
    name = excluded.name,
    url = excluded.url,
    fetched_at = excluded.fetched_at
`

type NoteVotingNameParams struct {
	DokID     string
	Name      string
	Url       string
	FetchedAt int64
}

func (q *Queries) NoteVotingName(ctx context.Context, arg NoteVotingNameParams) error {
	_, err := q.db.ExecContext(ctx, noteVotingName,
		arg.DokID,
		arg.Name,
		arg.Url,
		arg.FetchedAt,
	)
	return err
}

const countVotingNames = `-- name: CountVotingNames :one
select count(*) from voting_name
`

func (q *Queries) CountVotingNames(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countVotingNames)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteVotingName = `-- name: DeleteVotingName :exec
delete from voting_name where dok_id = ?
`

func (q *Queries) DeleteVotingName(ctx context.Context, dokID string) error {
	_, err := q.db.ExecContext(ctx, deleteVotingName, dokID)
	return err
}
