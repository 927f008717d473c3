package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Shot describes one entry in the capture file's shot registry.
type Shot struct {
	Shot        int64
	CapturedAt  time.Time
	Description *string
}

// SqliteArchive implements Querier over a local SQLite capture file.
// It keeps separate read and write connections, opened lazily on
// first use, mirroring the access patterns of a capture that is
// written once and queried many times.
type SqliteArchive struct {
	dbPath string

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

// Open creates a SqliteArchive over the capture file at dbPath.
// The file is not touched until the first query or store call.
func Open(dbPath string) *SqliteArchive {
	return &SqliteArchive{dbPath: dbPath}
}

func (a *SqliteArchive) getWriteDB() (*sql.DB, error) {
	a.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", a.dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
		if err != nil {
			a.writeDBErr = err
			return
		}

		if _, err = db.Exec(schemaSQL); err != nil {
			_ = db.Close()
			a.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		a.writeDB = db
	})

	return a.writeDB, a.writeDBErr
}

func (a *SqliteArchive) getReadDB() (*sql.DB, error) {
	a.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", a.dbPath)
		if err != nil {
			a.readDBErr = err
			return
		}
		a.readDB = db
	})

	return a.readDB, a.readDBErr
}

const selectSeriesSQL = `
SELECT
    time_ms,
    value
FROM series
WHERE
    shot = ?
    AND point_name = ?
    AND (? IS NULL OR time_ms >= ?)
    AND (? IS NULL OR time_ms <= ?)
ORDER BY time_ms`

// Query returns the series for a point name and shot, optionally
// restricted to a time window in milliseconds. Returns ErrNoData when
// nothing matches.
func (a *SqliteArchive) Query(ctx context.Context, pointName string, shot int64, opts ...QueryOption) (series *Series, err error) {
	var params QueryParams
	for _, opt := range opts {
		opt(&params)
	}

	db, err := a.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	stmt, err := db.PrepareContext(ctx, selectSeriesSQL)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		if cErr := stmt.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing statement: %w", cErr)
		}
	}()

	rows, err := stmt.QueryContext(ctx, shot, pointName,
		params.MinTime, params.MinTime, params.MaxTime, params.MaxTime)
	if err != nil {
		return nil, fmt.Errorf("querying series: %w", err)
	}
	defer func() {
		if cErr := rows.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cErr)
		}
	}()

	var s Series
	for rows.Next() {
		var t, v float64
		if err = rows.Scan(&t, &v); err != nil {
			return nil, fmt.Errorf("scanning sample: %w", err)
		}
		s.Times = append(s.Times, t)
		s.Values = append(s.Values, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating samples: %w", err)
	}

	if s.Len() == 0 {
		return nil, fmt.Errorf("point '%s', shot %d: %w", pointName, shot, ErrNoData)
	}

	return &s, nil
}

const insertShotSQL = `
INSERT INTO shots (shot, captured_at, description)
VALUES (?, CURRENT_TIMESTAMP, ?)
ON CONFLICT (shot) DO NOTHING`

// CreateShot registers a shot in the capture file. Registering an
// already present shot is a no-op.
func (a *SqliteArchive) CreateShot(ctx context.Context, shot int64, description string) (err error) {
	db, err := a.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	var desc sql.NullString
	if description != "" {
		desc.Valid = true
		desc.String = description
	}

	stmt, err := db.PrepareContext(ctx, insertShotSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		if cErr := stmt.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing statement: %w", cErr)
		}
	}()

	if _, err = stmt.ExecContext(ctx, shot, desc); err != nil {
		return fmt.Errorf("inserting shot: %w", err)
	}

	return nil
}

const selectShotsSQL = `
SELECT
    shot,
    captured_at,
    description
FROM shots
ORDER BY shot`

// Shots returns all shots registered in the capture file, ordered by
// shot number.
func (a *SqliteArchive) Shots(ctx context.Context) (shots []*Shot, err error) {
	db, err := a.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	rows, err := db.QueryContext(ctx, selectShotsSQL)
	if err != nil {
		return nil, fmt.Errorf("querying shots: %w", err)
	}
	defer func() {
		if cErr := rows.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cErr)
		}
	}()

	for rows.Next() {
		var s Shot
		if err = rows.Scan(&s.Shot, &s.CapturedAt, &s.Description); err != nil {
			return nil, fmt.Errorf("scanning shot: %w", err)
		}
		shots = append(shots, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shots: %w", err)
	}

	return shots, nil
}

const insertSampleSQL = `
INSERT INTO series (shot, point_name, time_ms, value)
VALUES (?, ?, ?, ?)`

// StoreSeries writes a complete series for one point name and shot in
// a single transaction. Timestamp and value slices must be the same
// length.
func (a *SqliteArchive) StoreSeries(ctx context.Context, pointName string, shot int64, s *Series) (err error) {
	if len(s.Times) != len(s.Values) {
		return fmt.Errorf("series length mismatch: %d timestamps, %d values", len(s.Times), len(s.Values))
	}

	db, err := a.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertSampleSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		if cErr := stmt.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing statement: %w", cErr)
		}
	}()

	for i := range s.Times {
		if _, err = stmt.ExecContext(ctx, shot, pointName, s.Times[i], s.Values[i]); err != nil {
			return fmt.Errorf("inserting sample %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing series: %w", err)
	}

	return nil
}

// Close releases both database connections. It is safe to call Close
// multiple times.
func (a *SqliteArchive) Close() error {
	a.closeOnce.Do(func() {
		var errs []error
		if a.writeDB != nil {
			if err := a.writeDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing write connection: %w", err))
			}
		}
		if a.readDB != nil {
			if err := a.readDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing read connection: %w", err))
			}
		}
		a.closeErr = errors.Join(errs...)
	})

	return a.closeErr
}
