package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dfryer1193/superheroes/shared/db"
	"github.com/dfryer1193/superheroes/superhero/domain"
)

var _ domain.ImageRepository = (*SQLImageRepository)(nil)

// SQLImageRepository implements domain.ImageRepository with plain SQL
type SQLImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new SQLImageRepository from a standard sql.DB
func NewImageRepository(sqlDB *sql.DB) *SQLImageRepository {
	return &SQLImageRepository{
		db: sqlDB,
	}
}

const insertImageQuery = `
	INSERT INTO image_superheroes (url, public_id, superhero_id)
	VALUES (?, ?, ?)
`

// AddSuperheroImage inserts one image row for superheroID.
// A missing superhero surfaces as domain.ErrSuperheroNotFound through the foreign key.
func (r *SQLImageRepository) AddSuperheroImage(ctx context.Context, superheroID int64, url, publicID string) (*domain.Image, error) {
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertImageQuery, url, publicID, superheroID)
	if db.IsForeignKeyViolation(err) {
		return nil, fmt.Errorf("%w: %d", domain.ErrSuperheroNotFound, superheroID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert image: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read image id: %w", err)
	}

	return &domain.Image{
		ID:          id,
		URL:         url,
		PublicID:    publicID,
		SuperheroID: superheroID,
	}, nil
}

const getImageQuery = `
	SELECT id, url, public_id, superhero_id
	FROM image_superheroes
	WHERE id = ?
`

// GetImage retrieves a single image with its public id
func (r *SQLImageRepository) GetImage(ctx context.Context, id int64) (*domain.Image, error) {
	var row imageRow
	err := row.scan(db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getImageQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrImageNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return row.toDomain(), nil
}

const listImagesBySuperheroQuery = `
	SELECT id, url, public_id, superhero_id
	FROM image_superheroes
	WHERE superhero_id = ?
	ORDER BY id
`

// ListImagesBySuperhero returns every image of a superhero with full details
func (r *SQLImageRepository) ListImagesBySuperhero(ctx context.Context, superheroID int64) ([]*domain.Image, error) {
	rows, err := db.GetExecutor(ctx, r.db).QueryContext(ctx, listImagesBySuperheroQuery, superheroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := make([]*domain.Image, 0)
	for rows.Next() {
		var row imageRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image rows: %w", err)
	}

	return images, nil
}

const deleteImageQuery = `DELETE FROM image_superheroes WHERE id = ?`

// DeleteImage removes the image row. The stored content is the caller's concern.
func (r *SQLImageRepository) DeleteImage(ctx context.Context, id int64) error {
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deleteImageQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return requireAffected(res, fmt.Errorf("%w: %d", domain.ErrImageNotFound, id))
}

// imageRow is a private struct used to scan database rows
type imageRow struct {
	ID          int64  `db:"id"`
	URL         string `db:"url"`
	PublicID    string `db:"public_id"`
	SuperheroID int64  `db:"superhero_id"`
}

func (ir *imageRow) scan(s rowScanner) error {
	return s.Scan(&ir.ID, &ir.URL, &ir.PublicID, &ir.SuperheroID)
}

func (ir *imageRow) toDomain() *domain.Image {
	return &domain.Image{
		ID:          ir.ID,
		URL:         ir.URL,
		PublicID:    ir.PublicID,
		SuperheroID: ir.SuperheroID,
	}
}
