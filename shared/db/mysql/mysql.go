package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dfryer1193/superheroes/shared/db"
	driver "github.com/go-sql-driver/mysql"
)

const (
	defaultPort     = 3306
	maxOpenConns    = 25
	maxIdleConns    = 10
	connMaxLifetime = 5 * time.Minute
)

type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// MySQLDB implements the db.Database interface for MySQL
type MySQLDB struct {
	cfg MySQLConfig
	db  *sql.DB
}

var _ db.Database = (*MySQLDB)(nil)

func NewMySQLDB(cfg *MySQLConfig) *MySQLDB {
	c := *cfg
	if c.Port == 0 {
		c.Port = defaultPort
	}
	return &MySQLDB{cfg: c}
}

// DSN renders the connection string for the configured server
func (m *MySQLDB) DSN() string {
	dc := driver.NewConfig()
	dc.User = m.cfg.User
	dc.Passwd = m.cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	dc.DBName = m.cfg.Name
	dc.ParseTime = true
	// report matched rather than changed rows so an UPDATE that changes nothing is not "not found"
	dc.ClientFoundRows = true
	dc.Params = map[string]string{"charset": "utf8mb4"}
	return dc.FormatDSN()
}

// Connect opens the pool, verifies the server is reachable and applies migrations
func (m *MySQLDB) Connect() error {
	if m.db != nil {
		return fmt.Errorf("database already connected")
	}

	sqlDB, err := sql.Open("mysql", m.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.RunMigrations(sqlDB, migrations); err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.db = sqlDB
	return nil
}

func (m *MySQLDB) Close() error {
	if m.db == nil {
		return nil
	}

	err := m.db.Close()
	m.db = nil
	return err
}

func (m *MySQLDB) DB() *sql.DB {
	return m.db
}

func (m *MySQLDB) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not connected")
	}
	return m.db.PingContext(ctx)
}
