package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dfryer1193/superheroes/superhero/domain"
	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the superhero schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// a second pooled connection would open a different in-memory database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE superheroes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nickname TEXT NOT NULL,
			real_name TEXT NOT NULL,
			origin_description TEXT NOT NULL,
			superpowers TEXT NOT NULL,
			catch_phrase TEXT NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("failed to create superheroes table: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE image_superheroes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			public_id TEXT NOT NULL,
			superhero_id INTEGER NOT NULL REFERENCES superheroes(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		t.Fatalf("failed to create image_superheroes table: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func newHero(nickname string) *domain.Superhero {
	return &domain.Superhero{
		Nickname:          nickname,
		RealName:          "John Doe",
		OriginDescription: "...",
		Superpowers:       "Flying",
		CatchPhrase:       "Here I am!",
	}
}

func mustCreateHero(t *testing.T, repo *SQLSuperheroRepository, nickname string) *domain.Superhero {
	t.Helper()
	hero := newHero(nickname)
	if err := repo.CreateSuperhero(context.Background(), hero); err != nil {
		t.Fatalf("CreateSuperhero failed: %v", err)
	}
	return hero
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
