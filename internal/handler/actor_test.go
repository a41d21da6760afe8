package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cartacaixa/filmlog/internal/repository"
)

func TestActorCreateRejectsMissingFields(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewActorHandler(repository.NewActorRepo(db))

	for _, body := range []string{
		`{"birthYear":1956}`,
		`{"name":"Tom Hanks"}`,
		`{"name":"   ","birthYear":1956}`,
	} {
		c, rec := jsonRequest(t, http.MethodPost, "/api/actors", body, nil)
		_ = h.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: code = %d, want 400", body, rec.Code)
		}
		if msg := envelopeError(t, rec); msg != "O nome e ano de nascimento são obrigatórios!" {
			t.Fatalf("body %s: unexpected error message %q", body, msg)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestActorCreateRejectsFutureBirthYear(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewActorHandler(repository.NewActorRepo(db))

	c, rec := jsonRequest(t, http.MethodPost, "/api/actors", `{"name":"Viajante","birthYear":3000}`, nil)
	_ = h.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
	if msg := envelopeError(t, rec); msg != "O ano de nascimento deve ser válido." {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestActorCreateSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO actors (name, birth_year) VALUES (?, ?)").
		WithArgs("Tom Hanks", 1956).
		WillReturnResult(sqlmock.NewResult(3, 1))
	h := NewActorHandler(repository.NewActorRepo(db))

	c, rec := jsonRequest(t, http.MethodPost, "/api/actors", `{"name":"Tom Hanks","birthYear":1956}`, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var actor struct {
		ID    uint64   `json:"id"`
		Name  string   `json:"name"`
		Films []uint64 `json:"films"`
	}
	if err := json.Unmarshal(env["actor"], &actor); err != nil {
		t.Fatalf("envelope has no actor: %s", rec.Body.String())
	}
	if actor.ID != 3 || actor.Name != "Tom Hanks" || actor.Films == nil {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestActorDeleteReturnsOldRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, name, birth_year FROM actors WHERE id = ?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birth_year"}).
			AddRow(3, "Tom Hanks", 1956))
	mock.ExpectQuery("SELECT film_id FROM film_actors WHERE actor_id = ? ORDER BY film_id").
		WithArgs(uint64(3)).WillReturnRows(sqlmock.NewRows([]string{"film_id"}))
	mock.ExpectQuery("SELECT oscar_id FROM actor_oscars WHERE actor_id = ? ORDER BY oscar_id").
		WithArgs(uint64(3)).WillReturnRows(sqlmock.NewRows([]string{"oscar_id"}))
	mock.ExpectExec("DELETE FROM actors WHERE id = ?").
		WithArgs(uint64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	h := NewActorHandler(repository.NewActorRepo(db))

	c, rec := jsonRequest(t, http.MethodDelete, "/api/actors/3", "", map[string]string{"id": "3"})
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	env := decodeEnvelope(t, rec)
	var old struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env["oldActor"], &old); err != nil || old.Name != "Tom Hanks" {
		t.Fatalf("oldActor missing or wrong: %s", rec.Body.String())
	}
}

func TestActorLinkFilmMissingFilm(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM actors WHERE id = ?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM films WHERE id = ?").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()
	h := NewActorHandler(repository.NewActorRepo(db))

	e, rec := jsonRequest(t, http.MethodPost, "/api/actors/3/films/99", "", nil)
	e.SetParamNames("actorId", "filmId")
	e.SetParamValues("3", "99")
	_ = h.LinkFilm(e)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404\n%s", rec.Code, rec.Body.String())
	}
	if msg := envelopeError(t, rec); msg != "Filme não encontrado!" {
		t.Fatalf("unexpected error message %q", msg)
	}
}
