package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// newMockDB returns a DB whose expectations match queries by exact string,
// which keeps the tests honest about the SQL the repositories actually run.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expectFilmLinks(mock sqlmock.Sqlmock, filmID uint64, actorIDs, oscarIDs []uint64) {
	actorRows := sqlmock.NewRows([]string{"actor_id"})
	for _, id := range actorIDs {
		actorRows.AddRow(id)
	}
	mock.ExpectQuery("SELECT actor_id FROM film_actors WHERE film_id = ? ORDER BY actor_id").
		WithArgs(filmID).WillReturnRows(actorRows)

	oscarRows := sqlmock.NewRows([]string{"oscar_id"})
	for _, id := range oscarIDs {
		oscarRows.AddRow(id)
	}
	mock.ExpectQuery("SELECT oscar_id FROM film_oscars WHERE film_id = ? ORDER BY oscar_id").
		WithArgs(filmID).WillReturnRows(oscarRows)
}

func TestFilmCreatePopulatesID(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO films (movie, director, nota) VALUES (?, ?, ?)").
		WithArgs("Forrest Gump", "Robert Zemeckis", 4).
		WillReturnResult(sqlmock.NewResult(7, 1))

	f := &Film{Movie: "Forrest Gump", Director: "Robert Zemeckis", Nota: 4}
	if err := NewFilmRepo(db).Create(context.Background(), f); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ID != 7 {
		t.Fatalf("ID = %d, want 7", f.ID)
	}
	if f.Actors == nil || f.Oscars == nil {
		t.Fatal("association slices must be initialized empty, not nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFilmGetByIDLoadsAssociations(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, movie, director, nota FROM films WHERE id = ?").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie", "director", "nota"}).
			AddRow(2, "Stop Making Sense", "Jonathan Demme", 5))
	expectFilmLinks(mock, 2, []uint64{1, 3}, []uint64{4})

	f, err := NewFilmRepo(db).GetByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if f.Movie != "Stop Making Sense" || f.Nota != 5 {
		t.Fatalf("unexpected film %+v", f)
	}
	if len(f.Actors) != 2 || f.Actors[0] != 1 || f.Actors[1] != 3 {
		t.Fatalf("Actors = %v, want [1 3]", f.Actors)
	}
	if len(f.Oscars) != 1 || f.Oscars[0] != 4 {
		t.Fatalf("Oscars = %v, want [4]", f.Oscars)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFilmGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, movie, director, nota FROM films WHERE id = ?").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	if _, err := NewFilmRepo(db).GetByID(context.Background(), 99); !errors.Is(err, ErrFilmNotFound) {
		t.Fatalf("expected ErrFilmNotFound, got %v", err)
	}
}

func TestFilmUpdateRereadsTheRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE films SET movie = ?, director = ?, nota = ? WHERE id = ?").
		WithArgs("Forrest Gump", "Robert Zemeckis", 5, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // identical values report 0 rows
	mock.ExpectQuery("SELECT id, movie, director, nota FROM films WHERE id = ?").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie", "director", "nota"}).
			AddRow(7, "Forrest Gump", "Robert Zemeckis", 5))
	expectFilmLinks(mock, 7, nil, nil)

	f, err := NewFilmRepo(db).Update(context.Background(), 7, "Forrest Gump", "Robert Zemeckis", 5)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if f.Nota != 5 {
		t.Fatalf("Nota = %d, want 5", f.Nota)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFilmUpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE films SET movie = ?, director = ?, nota = ? WHERE id = ?").
		WithArgs("X", "YYY", 1, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, movie, director, nota FROM films WHERE id = ?").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	if _, err := NewFilmRepo(db).Update(context.Background(), 99, "X", "YYY", 1); !errors.Is(err, ErrFilmNotFound) {
		t.Fatalf("expected ErrFilmNotFound, got %v", err)
	}
}

func TestFilmDeleteReportsExistence(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM films WHERE id = ?").
		WithArgs(uint64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM films WHERE id = ?").
		WithArgs(uint64(99)).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewFilmRepo(db)
	if ok, err := repo.Delete(context.Background(), 7); err != nil || !ok {
		t.Fatalf("Delete(7) = %v/%v, want true/nil", ok, err)
	}
	if ok, err := repo.Delete(context.Background(), 99); err != nil || ok {
		t.Fatalf("Delete(99) = %v/%v, want false/nil", ok, err)
	}
}

func TestFilmListMelhoresFiltersByNota(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, movie, director, nota FROM films WHERE nota = 5 ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie", "director", "nota"}).
			AddRow(2, "Stop Making Sense", "Jonathan Demme", 5).
			AddRow(5, "Cidade de Deus", "Fernando Meirelles", 5))
	expectFilmLinks(mock, 2, nil, nil)
	expectFilmLinks(mock, 5, nil, nil)

	films, err := NewFilmRepo(db).ListMelhores(context.Background())
	if err != nil {
		t.Fatalf("ListMelhores: %v", err)
	}
	if len(films) != 2 {
		t.Fatalf("got %d films, want 2", len(films))
	}
	for _, f := range films {
		if f.Nota != 5 {
			t.Fatalf("film %d has nota %d", f.ID, f.Nota)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFilmListPassesWindowToQuery(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, movie, director, nota FROM films ORDER BY id LIMIT ? OFFSET ?").
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie", "director", "nota"}))

	films, err := NewFilmRepo(db).List(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if films == nil || len(films) != 0 {
		t.Fatalf("empty page must be a non-nil empty slice, got %#v", films)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
