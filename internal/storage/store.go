// Package storage is the key-value persistence behind every ledger. Each owner
// gets an isolated namespace that plays the part of on-device storage: string
// keys, JSON string values, last write wins, no cross-key transactions.
package storage

import "context"

// Store is one owner's key space. A missing key is reported with ok=false,
// never as an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type Backend interface {
	Namespace(owner string) Store
}

// Entries is a full export: owner -> key -> value.
type Entries map[string]map[string]string

// Dumper is implemented by backends that can export and re-import everything
// they hold; backups and device imports go through it.
type Dumper interface {
	Dump(ctx context.Context) (Entries, error)
	Restore(ctx context.Context, entries Entries) error
}
