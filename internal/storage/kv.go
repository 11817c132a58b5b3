// Package storage provides the string key-value stores inventory data and
// preferences are persisted to. Stores enforce a byte quota the way browser
// local storage does, so callers must handle ErrQuotaExceeded.
package storage

import "errors"

// DefaultQuota mirrors the usual per-origin local storage budget.
const DefaultQuota = 5 << 20

// ErrQuotaExceeded is returned by Set when the write would exceed the quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is a string key-value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
	Close() error
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
