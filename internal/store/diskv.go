package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore is the flat fallback Backend: one file per key in a single
// directory.
type DiskvStore struct {
	d *diskv.Diskv
}

// NewDiskv creates a DiskvStore rooted at dir. The directory is created
// lazily on first write.
func NewDiskv(dir string) *DiskvStore {
	return &DiskvStore{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

// Keys may contain any character, so file names carry them base64url
// encoded.
func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: base64.RawURLEncoding.EncodeToString([]byte(key))}
}

func pathToKey(pk *diskv.PathKey) string {
	b, err := base64.RawURLEncoding.DecodeString(pk.FileName)
	if err != nil {
		return pk.FileName
	}
	return string(b)
}

// Get returns the value stored under key.
func (s *DiskvStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	b, err := s.d.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("diskv: read %q: %w", key, err)
	}
	return string(b), true, nil
}

// Set stores value under key.
func (s *DiskvStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("diskv: write %q: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *DiskvStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("diskv: erase %q: %w", key, err)
	}
	return nil
}

// Clear removes every key.
func (s *DiskvStore) Clear(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists every key in ascending order.
func (s *DiskvStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var keys []string
	for k := range s.d.Keys(ctx.Done()) {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, ctx.Err()
}

// Close is a no-op; diskv holds no open handles between calls.
func (s *DiskvStore) Close() error { return nil }
