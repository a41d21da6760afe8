package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Oscar represents an award persisted in the database.  Films and Actors
// hold the ids of associated records.
type Oscar struct {
	ID             uint64    `json:"id"`
	NomePremio     string    `json:"nomePremio"`
	AnoRecebimento int       `json:"anoRecebimento"`
	Films          []uint64  `json:"films"`
	Actors         []uint64  `json:"actors"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// OscarRepo encapsulates all database queries related to oscars.
type OscarRepo struct {
	db *sql.DB
}

// NewOscarRepo constructs an OscarRepo with the provided DB handle.
func NewOscarRepo(db *sql.DB) *OscarRepo {
	return &OscarRepo{db: db}
}

// Create inserts a new oscar and populates its generated ID.
func (r *OscarRepo) Create(ctx context.Context, o *Oscar) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO oscars (nome_premio, ano_recebimento) VALUES (?, ?)",
		o.NomePremio, o.AnoRecebimento)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	o.Films = []uint64{}
	o.Actors = []uint64{}
	return nil
}

// GetByID fetches an oscar and its association ids, or ErrOscarNotFound.
func (r *OscarRepo) GetByID(ctx context.Context, id uint64) (*Oscar, error) {
	var o Oscar
	err := r.db.QueryRowContext(ctx,
		"SELECT id, nome_premio, ano_recebimento FROM oscars WHERE id = ?", id).
		Scan(&o.ID, &o.NomePremio, &o.AnoRecebimento)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOscarNotFound
		}
		return nil, err
	}
	if err := r.loadLinks(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update replaces the oscar's mutable fields and returns the refreshed
// record, or ErrOscarNotFound when the id does not exist.
func (r *OscarRepo) Update(ctx context.Context, id uint64, nomePremio string, anoRecebimento int) (*Oscar, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE oscars SET nome_premio = ?, ano_recebimento = ? WHERE id = ?",
		nomePremio, anoRecebimento, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an oscar and reports whether a row existed.
func (r *OscarRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM oscars WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns one page of oscars in insertion order.
func (r *OscarRepo) List(ctx context.Context, limit, offset int) ([]*Oscar, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, nome_premio, ano_recebimento FROM oscars ORDER BY id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*Oscar{}
	for rows.Next() {
		o := new(Oscar)
		if err := rows.Scan(&o.ID, &o.NomePremio, &o.AnoRecebimento); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		if err := r.loadLinks(ctx, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LinkFilm associates a film with an oscar.  Both sides are verified inside
// one transaction and the insert is idempotent, mirroring ActorRepo.LinkFilm.
func (r *OscarRepo) LinkFilm(ctx context.Context, oscarID, filmID uint64) (*Oscar, error) {
	return r.link(ctx, oscarID, filmID, "films", ErrFilmNotFound,
		"INSERT IGNORE INTO film_oscars (film_id, oscar_id) VALUES (?, ?)")
}

// LinkActor associates an actor with an oscar under the same guarantees.
func (r *OscarRepo) LinkActor(ctx context.Context, oscarID, actorID uint64) (*Oscar, error) {
	return r.link(ctx, oscarID, actorID, "actors", ErrActorNotFound,
		"INSERT IGNORE INTO actor_oscars (actor_id, oscar_id) VALUES (?, ?)")
}

// link verifies the oscar and the related record exist, then writes the join
// row.  relatedID is bound as the first insert parameter, the oscar id as
// the second.
func (r *OscarRepo) link(ctx context.Context, oscarID, relatedID uint64, relatedTable string, notFound error, insert string) (*Oscar, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if ok, err := exists(ctx, tx, "oscars", oscarID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrOscarNotFound
	}
	if ok, err := exists(ctx, tx, relatedTable, relatedID); err != nil {
		return nil, err
	} else if !ok {
		return nil, notFound
	}
	if _, err := tx.ExecContext(ctx, insert, relatedID, oscarID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, oscarID)
}

// loadLinks fills the Films and Actors id slices from the join tables.
func (r *OscarRepo) loadLinks(ctx context.Context, o *Oscar) error {
	var err error
	o.Films, err = idList(ctx, r.db,
		"SELECT film_id FROM film_oscars WHERE oscar_id = ? ORDER BY film_id", o.ID)
	if err != nil {
		return err
	}
	o.Actors, err = idList(ctx, r.db,
		"SELECT actor_id FROM actor_oscars WHERE oscar_id = ? ORDER BY actor_id", o.ID)
	return err
}
