package sqlite

import "github.com/dfryer1193/superheroes/shared/db"

// migrations is the ordered list of SQLite schema migrations
var migrations = []db.Migration{
	{
		Version: 1,
		Name:    "create_superheroes_table",
		Up: `
			CREATE TABLE IF NOT EXISTS superheroes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				nickname TEXT NOT NULL,
				real_name TEXT NOT NULL,
				origin_description TEXT NOT NULL,
				superpowers TEXT NOT NULL,
				catch_phrase TEXT NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_image_superheroes_table",
		Up: `
			CREATE TABLE IF NOT EXISTS image_superheroes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				url TEXT NOT NULL,
				public_id TEXT NOT NULL,
				superhero_id INTEGER NOT NULL
					REFERENCES superheroes(id) ON DELETE CASCADE
			);

			CREATE INDEX IF NOT EXISTS idx_image_superheroes_superhero_id
			ON image_superheroes(superhero_id);
		`,
	},
}
