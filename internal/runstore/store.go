package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kalebabebe/mitx-canvas-tools/internal/convert"
)

// Run is one recorded conversion of a course archive.
type Run struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	Report    convert.Report `json:"report"`
}

type Store interface {
	PutRun(ctx context.Context, source string, report convert.Report) (Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, source string, limit int) ([]Run, error)
}

var ErrRunNotFound = errors.New("run not found")

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutRun(ctx context.Context, source string, report convert.Report) (Run, error) {
	r := Run{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Report:    report,
	}
	countsJSON, err := json.Marshal(report.Counts)
	if err != nil {
		return Run{}, err
	}
	skippedJSON, err := json.Marshal(report.Skipped)
	if err != nil {
		return Run{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs (id,source,created_at,total,counts_json,skipped_json)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		r.ID, r.Source, r.CreatedAt.Unix(), report.Total(), string(countsJSON), string(skippedJSON))
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

func (s *SQLStore) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,source,created_at,counts_json,skipped_json FROM runs WHERE id=$1`, id)
	r, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	return r, err
}

func (s *SQLStore) ListRuns(ctx context.Context, source string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,source,created_at,counts_json,skipped_json FROM runs
		WHERE source=$1 ORDER BY created_at DESC LIMIT $2`, source, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanRun(scan func(...any) error) (Run, error) {
	var r Run
	var createdAt int64
	var countsJSON, skippedJSON string
	if err := scan(&r.ID, &r.Source, &createdAt, &countsJSON, &skippedJSON); err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(countsJSON), &r.Report.Counts); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(skippedJSON), &r.Report.Skipped); err != nil {
		return Run{}, err
	}
	return r, nil
}
