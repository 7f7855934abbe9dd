package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LovationAdmin/wealth-sync/utils"
)

const (
	PartitionAuth    = "auth"
	PartitionProfile = "profile"
)

// Only these partitions survive restarts. Resource lists are always
// re-fetched.
var persisted = map[string]bool{
	PartitionAuth:    true,
	PartitionProfile: true,
}

var ErrPartitionNotPersisted = errors.New("partition is not persisted")

// Store is the Persisted Client Store: a key-value store partitioned by
// store name and backed by a local sqlite file.
type Store struct {
	db  *sql.DB
	key string
}

// Open opens (or creates) the state file. A non-empty key must be 32
// characters; payloads are then sealed with AES-GCM.
func Open(path, key string) (*Store, error) {
	if key != "" && len(key) != 32 {
		return nil, utils.ErrInvalidKey
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, key: key}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Load decodes the partition into v. found is false when nothing is stored.
func (s *Store) Load(ctx context.Context, partition string, v any) (bool, error) {
	if !persisted[partition] {
		return false, fmt.Errorf("%w: %s", ErrPartitionNotPersisted, partition)
	}

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM client_state WHERE partition = ?`, partition,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", partition, err)
	}

	raw, err := s.open(payload)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", partition, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", partition, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, partition string, v any) error {
	if !persisted[partition] {
		return fmt.Errorf("%w: %s", ErrPartitionNotPersisted, partition)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", partition, err)
	}
	payload, err := s.seal(raw)
	if err != nil {
		return fmt.Errorf("seal %s: %w", partition, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO client_state (partition, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(partition) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, partition, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save %s: %w", partition, err)
	}
	return nil
}

// Delete removes the partition. Deleting an empty partition is not an error.
func (s *Store) Delete(ctx context.Context, partition string) error {
	if !persisted[partition] {
		return fmt.Errorf("%w: %s", ErrPartitionNotPersisted, partition)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE partition = ?`, partition); err != nil {
		return fmt.Errorf("delete %s: %w", partition, err)
	}
	return nil
}

func (s *Store) seal(raw []byte) (string, error) {
	if s.key == "" {
		return string(raw), nil
	}
	return utils.Encrypt(s.key, raw)
}

func (s *Store) open(payload string) ([]byte, error) {
	if s.key == "" {
		return []byte(payload), nil
	}
	return utils.Decrypt(s.key, payload)
}
