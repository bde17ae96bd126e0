//go:build cgo

package cache

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName = "sqlite3"
	dsnParams  = "?_busy_timeout=5000&_journal_mode=WAL"
)
