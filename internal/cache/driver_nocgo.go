//go:build !cgo

package cache

import (
	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"
	dsnParams  = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)
