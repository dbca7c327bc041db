package image

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerRepository stores each record as a JSON document in BadgerDB, keyed by
// image id. Transactions give the contract's read-after-write guarantee.
type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(path string) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata database: %w", err)
	}
	return &BadgerRepository{db: db}, nil
}

func (r *BadgerRepository) Insert(_ context.Context, rec *ImageRecord) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(rec.ID)); err == nil {
			return ErrConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setRecord(txn, rec)
	})
}

func (r *BadgerRepository) GetByID(_ context.Context, id string) (*ImageRecord, error) {
	var rec ImageRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrImageNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *BadgerRepository) Update(_ context.Context, rec *ImageRecord) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return setRecord(txn, rec)
	})
}

func (r *BadgerRepository) Delete(_ context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(id))
	})
}

func (r *BadgerRepository) Close() error {
	return r.db.Close()
}

func setRecord(txn *badger.Txn, rec *ImageRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return txn.Set([]byte(rec.ID), data)
}
