package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dfryer1193/superheroes/shared/db"
	"github.com/dfryer1193/superheroes/superhero/domain"
)

var _ domain.SuperheroRepository = (*SQLSuperheroRepository)(nil)

const defaultPageSize = 5

// SQLSuperheroRepository implements domain.SuperheroRepository with plain SQL.
// Queries use ? placeholders and run unchanged on MySQL and SQLite.
type SQLSuperheroRepository struct {
	db *sql.DB
}

// NewSuperheroRepository creates a new SQLSuperheroRepository from a standard sql.DB
func NewSuperheroRepository(sqlDB *sql.DB) *SQLSuperheroRepository {
	return &SQLSuperheroRepository{
		db: sqlDB,
	}
}

const insertSuperheroQuery = `
	INSERT INTO superheroes (nickname, real_name, origin_description, superpowers, catch_phrase)
	VALUES (?, ?, ?, ?, ?)
`

// CreateSuperhero inserts a new superhero and assigns the generated id to s
func (r *SQLSuperheroRepository) CreateSuperhero(ctx context.Context, s *domain.Superhero) error {
	if s == nil {
		return fmt.Errorf("superhero cannot be nil")
	}

	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertSuperheroQuery,
		s.Nickname,
		s.RealName,
		s.OriginDescription,
		s.Superpowers,
		s.CatchPhrase,
	)
	if err != nil {
		return fmt.Errorf("failed to insert superhero: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read superhero id: %w", err)
	}

	s.ID = id
	return nil
}

const listSuperheroesQuery = `
	SELECT id, nickname, real_name, origin_description, superpowers, catch_phrase
	FROM superheroes
	ORDER BY id
	LIMIT ? OFFSET ?
`

const countSuperheroesQuery = `SELECT COUNT(*) FROM superheroes`

// GetSuperheroes returns one page of superheroes with their images, plus the total count.
// page is zero-based.
func (r *SQLSuperheroRepository) GetSuperheroes(ctx context.Context, page, limit int) ([]*domain.Superhero, int, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page < 0 {
		page = 0
	}

	executor := db.GetExecutor(ctx, r.db)

	var total int
	if err := executor.QueryRowContext(ctx, countSuperheroesQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count superheroes: %w", err)
	}

	// a page past the end is empty, including offsets too large to represent
	if page > (math.MaxInt-limit)/limit || page*limit >= total {
		return make([]*domain.Superhero, 0), total, nil
	}

	rows, err := executor.QueryContext(ctx, listSuperheroesQuery, limit, page*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list superheroes: %w", err)
	}
	defer rows.Close()

	heroes := make([]*domain.Superhero, 0, min(limit, total-page*limit))
	for rows.Next() {
		var row superheroRow
		if err := row.scan(rows); err != nil {
			return nil, 0, fmt.Errorf("failed to scan superhero row: %w", err)
		}
		heroes = append(heroes, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating superhero rows: %w", err)
	}

	if err := r.attachImages(ctx, executor, heroes); err != nil {
		return nil, 0, err
	}

	return heroes, total, nil
}

const getSuperheroQuery = `
	SELECT id, nickname, real_name, origin_description, superpowers, catch_phrase
	FROM superheroes
	WHERE id = ?
`

// GetSuperheroByID retrieves a single superhero with the id and url of each image
func (r *SQLSuperheroRepository) GetSuperheroByID(ctx context.Context, id int64) (*domain.Superhero, error) {
	executor := db.GetExecutor(ctx, r.db)

	var row superheroRow
	err := row.scan(executor.QueryRowContext(ctx, getSuperheroQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrSuperheroNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get superhero: %w", err)
	}

	hero := row.toDomain()
	if err := r.attachImages(ctx, executor, []*domain.Superhero{hero}); err != nil {
		return nil, err
	}

	return hero, nil
}

// UpdateSuperhero applies the non-nil fields of u
func (r *SQLSuperheroRepository) UpdateSuperhero(ctx context.Context, id int64, u domain.SuperheroUpdate) error {
	if u.IsEmpty() {
		return domain.ErrEmptyUpdate
	}

	setClauses := make([]string, 0, 5)
	args := make([]any, 0, 6)

	set := func(column string, value *string) {
		if value == nil {
			return
		}
		setClauses = append(setClauses, column+" = ?")
		args = append(args, *value)
	}

	set("nickname", u.Nickname)
	set("real_name", u.RealName)
	set("origin_description", u.OriginDescription)
	set("superpowers", u.Superpowers)
	set("catch_phrase", u.CatchPhrase)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE superheroes SET %s WHERE id = ?", strings.Join(setClauses, ", "))

	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update superhero: %w", err)
	}

	return requireAffected(res, fmt.Errorf("%w: %d", domain.ErrSuperheroNotFound, id))
}

const deleteSuperheroImagesQuery = `DELETE FROM image_superheroes WHERE superhero_id = ?`

const deleteSuperheroQuery = `DELETE FROM superheroes WHERE id = ?`

// DeleteSuperhero removes the superhero and its image rows in one transaction.
// Images are deleted explicitly so the result does not depend on the store enforcing the cascade.
func (r *SQLSuperheroRepository) DeleteSuperhero(ctx context.Context, id int64) error {
	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		if _, err := executor.ExecContext(txCtx, deleteSuperheroImagesQuery, id); err != nil {
			return fmt.Errorf("failed to delete superhero images: %w", err)
		}

		res, err := executor.ExecContext(txCtx, deleteSuperheroQuery, id)
		if err != nil {
			return fmt.Errorf("failed to delete superhero: %w", err)
		}

		return requireAffected(res, fmt.Errorf("%w: %d", domain.ErrSuperheroNotFound, id))
	})
}

// attachImages loads the id and url of every image owned by heroes with a single query
func (r *SQLSuperheroRepository) attachImages(ctx context.Context, executor db.Executor, heroes []*domain.Superhero) error {
	if len(heroes) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Superhero, len(heroes))
	args := make([]any, 0, len(heroes))
	for _, h := range heroes {
		h.Images = make([]*domain.Image, 0)
		byID[h.ID] = h
		args = append(args, h.ID)
	}

	query := fmt.Sprintf(`
		SELECT id, url, superhero_id
		FROM image_superheroes
		WHERE superhero_id IN (%s)
		ORDER BY id
	`, placeholders(len(args)))

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to list superhero images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		img := &domain.Image{}
		if err := rows.Scan(&img.ID, &img.URL, &img.SuperheroID); err != nil {
			return fmt.Errorf("failed to scan image row: %w", err)
		}
		if h, ok := byID[img.SuperheroID]; ok {
			h.Images = append(h.Images, img)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating image rows: %w", err)
	}

	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// superheroRow is a private struct used to scan database rows
type superheroRow struct {
	ID                int64  `db:"id"`
	Nickname          string `db:"nickname"`
	RealName          string `db:"real_name"`
	OriginDescription string `db:"origin_description"`
	Superpowers       string `db:"superpowers"`
	CatchPhrase       string `db:"catch_phrase"`
}

func (sr *superheroRow) scan(s rowScanner) error {
	return s.Scan(
		&sr.ID,
		&sr.Nickname,
		&sr.RealName,
		&sr.OriginDescription,
		&sr.Superpowers,
		&sr.CatchPhrase,
	)
}

func (sr *superheroRow) toDomain() *domain.Superhero {
	return &domain.Superhero{
		ID:                sr.ID,
		Nickname:          sr.Nickname,
		RealName:          sr.RealName,
		OriginDescription: sr.OriginDescription,
		Superpowers:       sr.Superpowers,
		CatchPhrase:       sr.CatchPhrase,
		Images:            make([]*domain.Image, 0),
	}
}
