package domain

import "context"

// Superhero is a character record. Images holds only id and url when loaded for display.
type Superhero struct {
	ID                int64
	Nickname          string
	RealName          string
	OriginDescription string
	Superpowers       string
	CatchPhrase       string
	Images            []*Image
}

// SuperheroUpdate carries a partial update; nil fields are left untouched
type SuperheroUpdate struct {
	Nickname          *string
	RealName          *string
	OriginDescription *string
	Superpowers       *string
	CatchPhrase       *string
}

// IsEmpty reports whether the update changes nothing
func (u SuperheroUpdate) IsEmpty() bool {
	return u.Nickname == nil &&
		u.RealName == nil &&
		u.OriginDescription == nil &&
		u.Superpowers == nil &&
		u.CatchPhrase == nil
}

// Validate checks that every text field required at creation is present
func (s *Superhero) Validate() error {
	if s.Nickname == "" || s.RealName == "" || s.OriginDescription == "" || s.Superpowers == "" || s.CatchPhrase == "" {
		return ErrInvalidSuperhero
	}
	return nil
}

type SuperheroRepository interface {
	// CreateSuperhero inserts s and sets its ID
	CreateSuperhero(ctx context.Context, s *Superhero) error

	// GetSuperheroes returns the page at offset page*limit ordered by id, and the total row count
	GetSuperheroes(ctx context.Context, page, limit int) ([]*Superhero, int, error)

	GetSuperheroByID(ctx context.Context, id int64) (*Superhero, error)
	UpdateSuperhero(ctx context.Context, id int64, u SuperheroUpdate) error

	// DeleteSuperhero removes the superhero row and every image row it owns
	DeleteSuperhero(ctx context.Context, id int64) error
}
