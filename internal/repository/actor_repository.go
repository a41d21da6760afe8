package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Actor represents an actor persisted in the database.  Films and Oscars
// hold the ids of associated records.
type Actor struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	BirthYear int       `json:"birthYear"`
	Films     []uint64  `json:"films"`
	Oscars    []uint64  `json:"oscars"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ActorRepo encapsulates all database queries related to actors.
type ActorRepo struct {
	db *sql.DB
}

// NewActorRepo constructs an ActorRepo with the provided DB handle.
func NewActorRepo(db *sql.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// Create inserts a new actor and populates its generated ID.
func (r *ActorRepo) Create(ctx context.Context, a *Actor) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO actors (name, birth_year) VALUES (?, ?)",
		a.Name, a.BirthYear)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.Films = []uint64{}
	a.Oscars = []uint64{}
	return nil
}

// GetByID fetches an actor and its association ids, or ErrActorNotFound.
func (r *ActorRepo) GetByID(ctx context.Context, id uint64) (*Actor, error) {
	var a Actor
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, birth_year FROM actors WHERE id = ?", id).
		Scan(&a.ID, &a.Name, &a.BirthYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	if err := r.loadLinks(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces the actor's mutable fields and returns the refreshed
// record, or ErrActorNotFound when the id does not exist.
func (r *ActorRepo) Update(ctx context.Context, id uint64, name string, birthYear int) (*Actor, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE actors SET name = ?, birth_year = ? WHERE id = ?",
		name, birthYear, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an actor and reports whether a row existed.
func (r *ActorRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM actors WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns one page of actors in insertion order.
func (r *ActorRepo) List(ctx context.Context, limit, offset int) ([]*Actor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, birth_year FROM actors ORDER BY id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*Actor{}
	for rows.Next() {
		a := new(Actor)
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthYear); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, a := range out {
		if err := r.loadLinks(ctx, a); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LinkFilm associates a film with an actor.  Both sides are verified to
// exist before anything is written, and the insert runs in the same
// transaction as the checks, so a half-linked pair is unrepresentable.  The
// insert ignores duplicates: linking an already-linked pair is a no-op.  The
// refreshed actor is returned.
func (r *ActorRepo) LinkFilm(ctx context.Context, actorID, filmID uint64) (*Actor, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if ok, err := exists(ctx, tx, "actors", actorID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrActorNotFound
	}
	if ok, err := exists(ctx, tx, "films", filmID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrFilmNotFound
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO film_actors (film_id, actor_id) VALUES (?, ?)",
		filmID, actorID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, actorID)
}

// loadLinks fills the Films and Oscars id slices from the join tables.
func (r *ActorRepo) loadLinks(ctx context.Context, a *Actor) error {
	var err error
	a.Films, err = idList(ctx, r.db,
		"SELECT film_id FROM film_actors WHERE actor_id = ? ORDER BY film_id", a.ID)
	if err != nil {
		return err
	}
	a.Oscars, err = idList(ctx, r.db,
		"SELECT oscar_id FROM actor_oscars WHERE actor_id = ? ORDER BY oscar_id", a.ID)
	return err
}
