package mysql

import "github.com/dfryer1193/superheroes/shared/db"

// migrations is the ordered list of MySQL schema migrations.
// MySQL commits DDL implicitly, so each migration holds a single statement.
var migrations = []db.Migration{
	{
		Version: 1,
		Name:    "create_superheroes_table",
		Up: `
			CREATE TABLE IF NOT EXISTS superheroes (
				id INT NOT NULL AUTO_INCREMENT,
				nickname VARCHAR(255) NOT NULL,
				real_name VARCHAR(255) NOT NULL,
				origin_description TEXT NOT NULL,
				superpowers VARCHAR(255) NOT NULL,
				catch_phrase VARCHAR(255) NOT NULL,
				PRIMARY KEY (id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
		`,
	},
	{
		Version: 2,
		Name:    "create_image_superheroes_table",
		Up: `
			CREATE TABLE IF NOT EXISTS image_superheroes (
				id INT NOT NULL AUTO_INCREMENT,
				url VARCHAR(1024) NOT NULL,
				public_id VARCHAR(255) NOT NULL,
				superhero_id INT NOT NULL,
				PRIMARY KEY (id),
				KEY idx_image_superheroes_superhero_id (superhero_id),
				CONSTRAINT fk_image_superheroes_superhero
					FOREIGN KEY (superhero_id) REFERENCES superheroes (id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
		`,
	},
}
