package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"time"
)

// Film represents a film persisted in the database.  The Actors and Oscars
// slices hold the ids of associated records, loaded from the join tables in
// insertion order.  Timestamps are kept internal and not serialized.
type Film struct {
	ID        uint64    `json:"id"`
	Movie     string    `json:"movie"`
	Director  string    `json:"director"`
	Nota      int       `json:"nota"`
	Actors    []uint64  `json:"actors"`
	Oscars    []uint64  `json:"oscars"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// FilmRepo encapsulates all database queries related to films.  The *sql.DB
// is injected so tests can substitute their own connection.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the provided DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// Create inserts a new film.  Field validation happens at the handler
// boundary; the repository only persists.  On success the ID field is
// populated with the auto-generated value and the association slices are
// initialized empty.
func (r *FilmRepo) Create(ctx context.Context, f *Film) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO films (movie, director, nota) VALUES (?, ?, ?)",
		f.Movie, f.Director, f.Nota)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	f.Actors = []uint64{}
	f.Oscars = []uint64{}
	return nil
}

// GetByID fetches a film and its association ids.  It returns
// ErrFilmNotFound if no row exists.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (*Film, error) {
	var f Film
	err := r.db.QueryRowContext(ctx,
		"SELECT id, movie, director, nota FROM films WHERE id = ?", id).
		Scan(&f.ID, &f.Movie, &f.Director, &f.Nota)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	if err := r.loadLinks(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Update replaces every mutable field of a film (full replace, not patch)
// and returns the refreshed record.  ErrFilmNotFound is reported when the id
// does not exist.
func (r *FilmRepo) Update(ctx context.Context, id uint64, movie, director string, nota int) (*Film, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE films SET movie = ?, director = ?, nota = ? WHERE id = ?",
		movie, director, nota, id); err != nil {
		return nil, err
	}
	// Re-read instead of trusting RowsAffected: updating a row to identical
	// values reports zero affected rows on MySQL.
	return r.GetByID(ctx, id)
}

// Delete removes a film and reports whether a row existed.  Deleting a
// missing id is not an error.  Join-table rows go away via ON DELETE CASCADE.
func (r *FilmRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM films WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns one page of films in insertion order.
func (r *FilmRepo) List(ctx context.Context, limit, offset int) ([]*Film, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, movie, director, nota FROM films ORDER BY id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// ListMelhores returns every film rated 5, in insertion order.
func (r *FilmRepo) ListMelhores(ctx context.Context) ([]*Film, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, movie, director, nota FROM films WHERE nota = 5 ORDER BY id")
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// collect scans film rows and loads association ids for each record.
func (r *FilmRepo) collect(ctx context.Context, rows *sql.Rows) ([]*Film, error) {
	defer rows.Close()
	out := []*Film{}
	for rows.Next() {
		f := new(Film)
		if err := rows.Scan(&f.ID, &f.Movie, &f.Director, &f.Nota); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range out {
		if err := r.loadLinks(ctx, f); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// loadLinks fills the Actors and Oscars id slices from the join tables.
func (r *FilmRepo) loadLinks(ctx context.Context, f *Film) error {
	var err error
	f.Actors, err = idList(ctx, r.db,
		"SELECT actor_id FROM film_actors WHERE film_id = ? ORDER BY actor_id", f.ID)
	if err != nil {
		return err
	}
	f.Oscars, err = idList(ctx, r.db,
		"SELECT oscar_id FROM film_oscars WHERE film_id = ? ORDER BY oscar_id", f.ID)
	return err
}

// idList runs a single-column id query and returns the values as a slice.
// It always returns a non-nil slice so empty associations serialize as [].
func idList(ctx context.Context, db *sql.DB, query string, arg uint64) ([]uint64, error) {
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// exists reports whether a row with the given id is present in table.  Used
// by the association writers to verify both sides before linking.
func exists(ctx context.Context, q queryer, table string, id uint64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
