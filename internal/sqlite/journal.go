// This file implements the transaction journal: every recorded Result is an
// immutable history entry whose ordered value lists support later undo.
package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/catalog"
	"github.com/voxelsmith/slate/pkg/data"
)

// Journal value categories, mirroring the three Result lists.
const (
	categorySucceeded = "succeeded"
	categoryReplaced  = "replaced"
	categoryRejected  = "rejected"
)

// journalTimeLayout is the created_at format. The fractional second is
// fixed-width, never trimmed, so lexical order on the TEXT column matches
// chronological order and ORDER BY created_at stays correct.
const journalTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordResult appends a transaction result to the journal. Absent
// categories store no rows at all, so "absent" survives the round trip.
func (b *Backend) RecordResult(blockType block.Type, result data.Result) (catalog.TransactionRecord, error) {
	db, err := b.handle()
	if err != nil {
		return catalog.TransactionRecord{}, err
	}

	id := generateUUID()
	createdAt := time.Now().UTC()

	tx, err := db.Begin()
	if err != nil {
		return catalog.TransactionRecord{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO transactions (transaction_id, block_type, kind, created_at) VALUES (?, ?, ?, ?)",
		id, string(blockType), string(result.Kind()), createdAt.Format(journalTimeLayout),
	); err != nil {
		return catalog.TransactionRecord{}, fmt.Errorf("inserting transaction: %w", err)
	}

	categories := []struct {
		name string
		list data.ValueList
	}{
		{categorySucceeded, result.SuccessfulData()},
		{categoryReplaced, result.ReplacedData()},
		{categoryRejected, result.RejectedData()},
	}
	for _, c := range categories {
		category, list := c.name, c.list
		if !list.Defined() {
			continue
		}
		for pos, v := range list.Values() {
			enc, err := json.Marshal(v.Get())
			if err != nil {
				return catalog.TransactionRecord{}, fmt.Errorf("encoding %s value %s: %w", category, v.Key(), err)
			}
			if _, err := tx.Exec(
				"INSERT INTO transaction_values (transaction_id, category, position, key, value) VALUES (?, ?, ?, ?, ?)",
				id, category, pos, v.Key(), string(enc),
			); err != nil {
				return catalog.TransactionRecord{}, fmt.Errorf("inserting %s value %s: %w", category, v.Key(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return catalog.TransactionRecord{}, fmt.Errorf("committing journal entry: %w", err)
	}

	return catalog.TransactionRecord{
		ID:        id,
		BlockType: blockType,
		Kind:      result.Kind(),
		Succeeded: result.SuccessfulData().Values(),
		Replaced:  result.ReplacedData().Values(),
		Rejected:  result.RejectedData().Values(),
		CreatedAt: createdAt,
	}, nil
}

// Transactions returns journal records, newest first. A non-positive limit
// returns all records.
func (b *Backend) Transactions(limit int) ([]catalog.TransactionRecord, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	query := "SELECT transaction_id, block_type, kind, created_at FROM transactions ORDER BY created_at DESC, transaction_id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var records []catalog.TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	for i := range records {
		if err := loadValues(db,&records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Transaction returns the journal record with the given ID.
func (b *Backend) Transaction(id string) (catalog.TransactionRecord, error) {
	db, err := b.handle()
	if err != nil {
		return catalog.TransactionRecord{}, err
	}
	if id == "" {
		return catalog.TransactionRecord{}, catalog.ErrInvalidTransactionID
	}

	row := db.QueryRow(
		"SELECT transaction_id, block_type, kind, created_at FROM transactions WHERE transaction_id = ?",
		id,
	)
	rec, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return catalog.TransactionRecord{}, catalog.ErrTransactionNotFound
	}
	if err != nil {
		return catalog.TransactionRecord{}, err
	}
	if err := loadValues(db,&rec); err != nil {
		return catalog.TransactionRecord{}, err
	}
	return rec, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction hydrates one transactions row.
func scanTransaction(s scanner) (catalog.TransactionRecord, error) {
	var id, bt, kind, createdAt string
	if err := s.Scan(&id, &bt, &kind, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return catalog.TransactionRecord{}, err
		}
		return catalog.TransactionRecord{}, fmt.Errorf("scanning transaction: %w", err)
	}
	ts, err := time.Parse(journalTimeLayout, createdAt)
	if err != nil {
		return catalog.TransactionRecord{}, fmt.Errorf("parsing transaction timestamp: %w", err)
	}
	return catalog.TransactionRecord{
		ID:        id,
		BlockType: block.Type(bt),
		Kind:      data.ResultKind(kind),
		CreatedAt: ts,
	}, nil
}

// loadValues hydrates the three value categories of a record. Categories
// with no rows stay nil.
func loadValues(db *sql.DB, rec *catalog.TransactionRecord) error {
	rows, err := db.Query(
		"SELECT category, key, value FROM transaction_values WHERE transaction_id = ? ORDER BY category, position",
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("querying values of %s: %w", rec.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, key, raw string
		if err := rows.Scan(&category, &key, &raw); err != nil {
			return fmt.Errorf("scanning value of %s: %w", rec.ID, err)
		}
		payload, err := decodeJournalValue(raw)
		if err != nil {
			return fmt.Errorf("decoding value %s of %s: %w", key, rec.ID, err)
		}
		v := data.NewValue(key, payload)
		switch category {
		case categorySucceeded:
			rec.Succeeded = append(rec.Succeeded, v)
		case categoryReplaced:
			rec.Replaced = append(rec.Replaced, v)
		case categoryRejected:
			rec.Rejected = append(rec.Rejected, v)
		default:
			return fmt.Errorf("journal entry %s has unknown category %q", rec.ID, category)
		}
	}
	return rows.Err()
}

// decodeJournalValue decodes a stored payload. Whole numbers come back as
// int so a replayed value still matches an int property's domain.
func decodeJournalValue(raw string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		return n.Float64()
	}
	return v, nil
}
