// Package archive keeps decoded solution batches in a SQLite database.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tliron/commonlog"

	"github.com/bennorth/countdown-numbers-solver/pprint"
	"github.com/bennorth/countdown-numbers-solver/solution"

	_ "modernc.org/sqlite"
)

var log = commonlog.GetLogger("countdown.archive")

// ErrNotFound is returned when a batch id is not in the archive.
var ErrNotFound = errors.New("batch not found")

var schema = []string{`
CREATE TABLE IF NOT EXISTS batches (
	id         TEXT PRIMARY KEY,
	cards      TEXT NOT NULL,
	target     INTEGER NOT NULL,
	solver     TEXT NOT NULL,
	programs   BLOB NOT NULL,
	created_at INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS expressions (
	batch_id TEXT NOT NULL REFERENCES batches(id),
	seq      INTEGER NOT NULL,
	text     TEXT NOT NULL,
	PRIMARY KEY (batch_id, seq)
)`,
}

// Summary describes one stored batch.
type Summary struct {
	ID          string
	Cards       pprint.Cards
	Target      int
	Solver      string
	Expressions int
	CreatedAt   time.Time
}

// Archive is a handle on an open archive database.
type Archive struct {
	db *sql.DB
}

// Open opens or creates the archive at path. ":memory:" gives a private
// in-memory archive.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: enable foreign keys: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("archive: create schema: %w", err)
		}
	}
	log.Debugf("opened archive %s", path)
	return &Archive{db: db}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save stores a batch with its decoded expressions, replacing any earlier
// copy with the same id.
func (a *Archive) Save(ctx context.Context, b *solution.Batch, exprs []string) error {
	cards, err := json.Marshal(b.Cards)
	if err != nil {
		return fmt.Errorf("archive: encode cards: %w", err)
	}

	programs := b.Programs
	if programs == nil {
		programs = []byte{}
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteBatch(ctx, tx, b.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("archive: replace %s: %w", b.ID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO batches (id, cards, target, solver, programs, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, string(cards), b.Target, b.Solver, programs, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("archive: insert batch %s: %w", b.ID, err)
	}
	for i, e := range exprs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expressions (batch_id, seq, text) VALUES (?, ?, ?)`, b.ID, i, e,
		); err != nil {
			return fmt.Errorf("archive: insert expression %d of %s: %w", i, b.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive: commit %s: %w", b.ID, err)
	}
	log.Infof("archived batch %s (%d expressions)", b.ID, len(exprs))
	return nil
}

// Batches lists stored batches, newest first.
func (a *Archive) Batches(ctx context.Context) ([]Summary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT b.id, b.cards, b.target, b.solver, b.created_at, COUNT(e.seq)
		FROM batches b LEFT JOIN expressions e ON e.batch_id = b.id
		GROUP BY b.id
		ORDER BY b.created_at DESC, b.id`)
	if err != nil {
		return nil, fmt.Errorf("archive: list batches: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s       Summary
			cards   string
			created int64
		)
		if err := rows.Scan(&s.ID, &cards, &s.Target, &s.Solver, &created, &s.Expressions); err != nil {
			return nil, fmt.Errorf("archive: scan batch: %w", err)
		}
		if err := json.Unmarshal([]byte(cards), &s.Cards); err != nil {
			return nil, fmt.Errorf("archive: batch %s cards: %w", s.ID, err)
		}
		s.CreatedAt = time.Unix(created, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Batch loads a stored batch.
func (a *Archive) Batch(ctx context.Context, id string) (*solution.Batch, error) {
	var (
		b     solution.Batch
		cards string
	)
	err := a.db.QueryRowContext(ctx,
		`SELECT id, cards, target, solver, programs FROM batches WHERE id = ?`, id,
	).Scan(&b.ID, &cards, &b.Target, &b.Solver, &b.Programs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("archive: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("archive: load %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(cards), &b.Cards); err != nil {
		return nil, fmt.Errorf("archive: batch %s cards: %w", id, err)
	}
	return &b, nil
}

// Expressions returns the stored expressions of a batch in program order.
func (a *Archive) Expressions(ctx context.Context, id string) ([]string, error) {
	if _, err := a.Batch(ctx, id); err != nil {
		return nil, err
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT text FROM expressions WHERE batch_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("archive: expressions of %s: %w", id, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("archive: scan expression: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a batch and its expressions.
func (a *Archive) Delete(ctx context.Context, id string) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteBatch(ctx, tx, id); err != nil {
		return fmt.Errorf("archive: delete %s: %w", id, err)
	}
	return tx.Commit()
}

// deleteBatch removes id and its expressions, returning ErrNotFound when
// no batch row matched.
func deleteBatch(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM expressions WHERE batch_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
