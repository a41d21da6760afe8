package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cartacaixa/filmlog/internal/pagination"
	"github.com/cartacaixa/filmlog/internal/repository"
)

// FilmHandler bundles dependencies for the film endpoints.
type FilmHandler struct {
	Films *repository.FilmRepo
}

func NewFilmHandler(films *repository.FilmRepo) *FilmHandler {
	return &FilmHandler{Films: films}
}

type filmReq struct {
	Movie    string `json:"movie"`
	Director string `json:"director"`
	Nota     *int   `json:"nota"` // pointer so "absent" and "zero" are distinguishable
}

// validateFilm applies the boundary rules: title and director present,
// director of at least 3 characters, nota an integer from 1 to 5.  The store
// never re-validates.  On failure the 400 response is already written and
// ok is false.
func validateFilm(c echo.Context) (req filmReq, ok bool) {
	if err := c.Bind(&req); err != nil {
		_ = fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
		return req, false
	}
	req.Movie = strings.TrimSpace(req.Movie)
	req.Director = strings.TrimSpace(req.Director)
	if req.Movie == "" || req.Director == "" {
		_ = fail(c, http.StatusBadRequest, "O título do filme e o diretor são obrigatórios")
		return req, false
	}
	if len(req.Director) < 3 {
		_ = fail(c, http.StatusBadRequest, "O nome do diretor deve ter ao menos 3 caracteres")
		return req, false
	}
	if req.Nota == nil || *req.Nota < 1 || *req.Nota > 5 {
		_ = fail(c, http.StatusBadRequest, "A nota deve ser um número de 1 a 5.")
		return req, false
	}
	return req, true
}

// List handles GET /api/films with limite/pagina pagination.
func (h *FilmHandler) List(c echo.Context) error {
	p := pagination.Normalize(c.QueryParam("limite"), c.QueryParam("pagina"), pagination.MaxFilms)
	films, err := h.Films.List(c.Request().Context(), p.Limite, p.Offset())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao listar filmes.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "list": films})
}

// Melhores handles GET /api/films/melhores: only films rated 5, windowed
// in memory after the rating filter so the page is over the filtered set.
func (h *FilmHandler) Melhores(c echo.Context) error {
	films, err := h.Films.ListMelhores(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao listar melhores filmes.")
	}
	p := pagination.Normalize(c.QueryParam("limite"), c.QueryParam("pagina"), pagination.MaxFilms)
	return c.JSON(http.StatusOK, echo.Map{"status": true, "list": pagination.Window(films, p)})
}

// Get handles GET /api/films/:id.
func (h *FilmHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	film, err := h.Films.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return fail(c, http.StatusNotFound, "Filme não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao buscar filme.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "film": film})
}

// Create handles POST /api/films (admin-only).
func (h *FilmHandler) Create(c echo.Context) error {
	req, ok := validateFilm(c)
	if !ok {
		return nil
	}
	film := &repository.Film{Movie: req.Movie, Director: req.Director, Nota: *req.Nota}
	if err := h.Films.Create(c.Request().Context(), film); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao criar filme.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "film": film})
}

// Update handles PUT /api/films/:id (admin-only).  Full-field replace.
func (h *FilmHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	req, ok := validateFilm(c)
	if !ok {
		return nil
	}
	film, err := h.Films.Update(c.Request().Context(), id, req.Movie, req.Director, *req.Nota)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return fail(c, http.StatusNotFound, "Filme não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao atualizar filme.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "film": film})
}

// Delete handles DELETE /api/films/:id (admin-only).  The removed record is
// returned under oldFilm, as the API always did.
func (h *FilmHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	film, err := h.Films.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return fail(c, http.StatusNotFound, "Filme não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao deletar filme.")
	}
	if _, err := h.Films.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao deletar filme.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "oldFilm": film})
}
