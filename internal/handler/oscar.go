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

// OscarHandler bundles dependencies for the oscar endpoints.
type OscarHandler struct {
	Oscars *repository.OscarRepo
}

func NewOscarHandler(oscars *repository.OscarRepo) *OscarHandler {
	return &OscarHandler{Oscars: oscars}
}

type oscarReq struct {
	NomePremio     string `json:"nomePremio"`
	AnoRecebimento *int   `json:"anoRecebimento"`
}

// validateOscar enforces presence of the award name and a year no later
// than the current calendar year.  On failure the 400 is already written
// and ok is false.
func validateOscar(c echo.Context) (req oscarReq, ok bool) {
	if err := c.Bind(&req); err != nil {
		_ = fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
		return req, false
	}
	req.NomePremio = strings.TrimSpace(req.NomePremio)
	if req.NomePremio == "" || req.AnoRecebimento == nil {
		_ = fail(c, http.StatusBadRequest, "O nome do prêmio e o ano de recebimento são obrigatórios!")
		return req, false
	}
	if currentYear := time.Now().Year(); *req.AnoRecebimento > currentYear {
		_ = fail(c, http.StatusBadRequest, "O ano de recebimento deve ser válido.")
		return req, false
	}
	return req, true
}

// List handles GET /api/oscars with limite/pagina pagination.
func (h *OscarHandler) List(c echo.Context) error {
	p := pagination.Normalize(c.QueryParam("limite"), c.QueryParam("pagina"), pagination.MaxOscars)
	oscars, err := h.Oscars.List(c.Request().Context(), p.Limite, p.Offset())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao listar Oscars.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "list": oscars})
}

// Get handles GET /api/oscars/:id.
func (h *OscarHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	oscar, err := h.Oscars.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOscarNotFound) {
			return fail(c, http.StatusNotFound, "Oscar não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao buscar Oscar.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oscar": oscar})
}

// Create handles POST /api/oscars (admin-only).
func (h *OscarHandler) Create(c echo.Context) error {
	req, ok := validateOscar(c)
	if !ok {
		return nil
	}
	oscar := &repository.Oscar{NomePremio: req.NomePremio, AnoRecebimento: *req.AnoRecebimento}
	if err := h.Oscars.Create(c.Request().Context(), oscar); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao criar Oscar.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oscar": oscar})
}

// Update handles PUT /api/oscars/:id (admin-only).  Full-field replace.
func (h *OscarHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	req, ok := validateOscar(c)
	if !ok {
		return nil
	}
	oscar, err := h.Oscars.Update(c.Request().Context(), id, req.NomePremio, *req.AnoRecebimento)
	if err != nil {
		if errors.Is(err, repository.ErrOscarNotFound) {
			return fail(c, http.StatusNotFound, "Oscar não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao atualizar Oscar.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oscar": oscar})
}

// Delete handles DELETE /api/oscars/:id (admin-only), returning oldOscar.
func (h *OscarHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	oscar, err := h.Oscars.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOscarNotFound) {
			return fail(c, http.StatusNotFound, "Oscar não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao deletar Oscar.")
	}
	if _, err := h.Oscars.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao deletar Oscar.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oldOscar": oscar})
}

// LinkFilm handles POST /api/oscars/:oscarId/films/:filmId (admin-only).
func (h *OscarHandler) LinkFilm(c echo.Context) error {
	oscarID, err := parseID(c, "oscarId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	filmID, err := parseID(c, "filmId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	oscar, err := h.Oscars.LinkFilm(c.Request().Context(), oscarID, filmID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOscarNotFound):
			return fail(c, http.StatusNotFound, "Oscar não encontrado!")
		case errors.Is(err, repository.ErrFilmNotFound):
			return fail(c, http.StatusNotFound, "Filme não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao associar filme ao Oscar.")
	}
	h.publishLink(c, oscarID, "film", filmID)
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oscar": oscar})
}

// LinkActor handles POST /api/oscars/:oscarId/actors/:actorId (admin-only).
func (h *OscarHandler) LinkActor(c echo.Context) error {
	oscarID, err := parseID(c, "oscarId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	actorID, err := parseID(c, "actorId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	oscar, err := h.Oscars.LinkActor(c.Request().Context(), oscarID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOscarNotFound):
			return fail(c, http.StatusNotFound, "Oscar não encontrado!")
		case errors.Is(err, repository.ErrActorNotFound):
			return fail(c, http.StatusNotFound, "Ator não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao associar ator ao Oscar.")
	}
	h.publishLink(c, oscarID, "actor", actorID)
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oscar": oscar})
}

// publishLink emits the catalog.linked event for an oscar association.
// Failures are ignored: the link is already committed.
func (h *OscarHandler) publishLink(c echo.Context, oscarID uint64, relatedType string, relatedID uint64) {
	linkedBy, _ := middleware.UserID(c)
	_ = queue_publisher.PublishCatalogLinked(c.Request().Context(), queue.CatalogLinkedEvent{
		OwnerType:   "oscar",
		OwnerID:     oscarID,
		RelatedType: relatedType,
		RelatedID:   relatedID,
		LinkedBy:    linkedBy,
		LinkedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
