// Package repo provides postgres access for assessment records
package repo

import (
	"context"
	"encoding/json"
	"time"

	"creditrisk/internal/modkit/repokit"
	perr "creditrisk/internal/platform/errors"
	"creditrisk/internal/services/api/assessment/domain"
)

// Schema creates the assessments table; documents are stored as jsonb blocks
const Schema = `
create table if not exists assessments (
	id          uuid primary key,
	farmer_data jsonb not null,
	scores      jsonb not null,
	reasoning   jsonb not null,
	loan_terms  jsonb not null,
	location    text not null default '',
	meta        jsonb not null,
	version     int not null,
	created_at  timestamptz not null default now()
);
create index if not exists assessments_created_at_idx on assessments (created_at desc);
`

// insertRetryDelay separates the single retry of a transient insert failure
const insertRetryDelay = 50 * time.Millisecond

// Repo defines the repository contract for assessments
type Repo interface {
	Insert(ctx context.Context, rec domain.Record) error
}

type (
	// PG implements the Repo binder using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// EnsureSchema applies Schema
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return perr.FromPostgresf(err, "ensure assessments schema")
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, rec domain.Record) error {
	docs := make([][]byte, 0, 5)
	for _, v := range []any{rec.FarmerData, rec.Scores, rec.Reasoning, rec.LoanTerms, rec.Meta} {
		b, err := json.Marshal(v)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "encode assessment record")
		}
		docs = append(docs, b)
	}
	const sql = `
insert into assessments (id, farmer_data, scores, reasoning, loan_terms, location, meta, version, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	var err error
	for attempt := 1; ; attempt++ {
		_, err = r.q.Exec(ctx, sql, rec.ID, docs[0], docs[1], docs[2], docs[3], rec.Location, docs[4], rec.Version, rec.CreatedAt)
		if err == nil {
			return nil
		}
		if attempt == 2 || !perr.IsRetryable(err) {
			break
		}
		t := time.NewTimer(insertRetryDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return perr.WithOp(perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "insert assessment"), "assessments.insert")
		case <-t.C:
		}
	}
	return perr.WithOp(perr.FromPostgresf(err, "insert assessment %s", rec.ID), "assessments.insert")
}
