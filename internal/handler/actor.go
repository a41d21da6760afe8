package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartacaixa/filmlog/internal/middleware"
	"github.com/cartacaixa/filmlog/internal/pagination"
	"github.com/cartacaixa/filmlog/internal/queue"
	"github.com/cartacaixa/filmlog/internal/repository"
	queue_publisher "github.com/cartacaixa/filmlog/internal/service"
)

// ActorHandler bundles dependencies for the actor endpoints.
type ActorHandler struct {
	Actors *repository.ActorRepo
}

func NewActorHandler(actors *repository.ActorRepo) *ActorHandler {
	return &ActorHandler{Actors: actors}
}

type actorReq struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birthYear"`
}

// validateActor enforces presence of the name and a birth year no later than
// the current calendar year.  On failure the 400 is already written and ok
// is false.
func validateActor(c echo.Context) (req actorReq, ok bool) {
	if err := c.Bind(&req); err != nil {
		_ = fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.BirthYear == nil {
		_ = fail(c, http.StatusBadRequest, "O nome e ano de nascimento são obrigatórios!")
		return req, false
	}
	if currentYear := time.Now().Year(); *req.BirthYear > currentYear {
		_ = fail(c, http.StatusBadRequest, "O ano de nascimento deve ser válido.")
		return req, false
	}
	return req, true
}

// List handles GET /api/actors with limite/pagina pagination.
func (h *ActorHandler) List(c echo.Context) error {
	p := pagination.Normalize(c.QueryParam("limite"), c.QueryParam("pagina"), pagination.MaxActors)
	actors, err := h.Actors.List(c.Request().Context(), p.Limite, p.Offset())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao listar os atores!")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "list": actors})
}

// Get handles GET /api/actors/:id.
func (h *ActorHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	actor, err := h.Actors.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return fail(c, http.StatusNotFound, "Ator não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao buscar ator.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "actor": actor})
}

// Create handles POST /api/actors (admin-only).
func (h *ActorHandler) Create(c echo.Context) error {
	req, ok := validateActor(c)
	if !ok {
		return nil
	}
	actor := &repository.Actor{Name: req.Name, BirthYear: *req.BirthYear}
	if err := h.Actors.Create(c.Request().Context(), actor); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao criar registro do ator!")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "actor": actor})
}

// Update handles PUT /api/actors/:id (admin-only).  Full-field replace.
func (h *ActorHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	req, ok := validateActor(c)
	if !ok {
		return nil
	}
	actor, err := h.Actors.Update(c.Request().Context(), id, req.Name, *req.BirthYear)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return fail(c, http.StatusNotFound, "Ator não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao atualizar dados do ator!")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "actor": actor})
}

// Delete handles DELETE /api/actors/:id (admin-only), returning oldActor.
func (h *ActorHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	actor, err := h.Actors.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return fail(c, http.StatusNotFound, "Ator não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao deletar ator!")
	}
	if _, err := h.Actors.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao deletar ator!")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oldActor": actor})
}

// LinkFilm handles POST /api/actors/:actorId/films/:filmId (admin-only).
// Both records must exist; re-linking an already-linked pair is a no-op.  A
// catalog.linked event is published best-effort after the commit.
func (h *ActorHandler) LinkFilm(c echo.Context) error {
	actorID, err := parseID(c, "actorId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	filmID, err := parseID(c, "filmId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	actor, err := h.Actors.LinkFilm(c.Request().Context(), actorID, filmID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrActorNotFound):
			return fail(c, http.StatusNotFound, "Ator não encontrado!")
		case errors.Is(err, repository.ErrFilmNotFound):
			return fail(c, http.StatusNotFound, "Filme não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao associar filme ao ator!")
	}

	linkedBy, _ := middleware.UserID(c)
	_ = queue_publisher.PublishCatalogLinked(c.Request().Context(), queue.CatalogLinkedEvent{
		OwnerType:   "actor",
		OwnerID:     actorID,
		RelatedType: "film",
		RelatedID:   filmID,
		LinkedBy:    linkedBy,
		LinkedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"status": true, "actor": actor})
}
