package db

import (
	"context"
	"database/sql"
)

// Database is a relational store handle with an explicit lifecycle: it is opened
// once at process start and closed at shutdown.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
	Ping(ctx context.Context) error
}
