package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartacaixa/filmlog/internal/config"
	"github.com/cartacaixa/filmlog/internal/repository"
)

// InstallHandler seeds the catalog with sample data and the admin account.
type InstallHandler struct {
	Cfg    config.Config
	Films  *repository.FilmRepo
	Actors *repository.ActorRepo
	Oscars *repository.OscarRepo
	Users  *repository.UserRepo
}

func NewInstallHandler(cfg config.Config, f *repository.FilmRepo, a *repository.ActorRepo, o *repository.OscarRepo, u *repository.UserRepo) *InstallHandler {
	return &InstallHandler{Cfg: cfg, Films: f, Actors: a, Oscars: o, Users: u}
}

// Install handles GET /install.  Sample films, actors and an oscar are
// inserted on every call; the admin account is only created when no user
// with the configured username exists yet, so repeated installs never
// produce a second admin.
func (h *InstallHandler) Install(c echo.Context) error {
	ctx := c.Request().Context()

	seedFilms := []repository.Film{
		{Movie: "Forrest Gump", Director: "Robert Zemeckis", Nota: 4},
		{Movie: "Stop Making Sense", Director: "Jonathan Demme", Nota: 5},
	}
	for i := range seedFilms {
		if err := h.Films.Create(ctx, &seedFilms[i]); err != nil {
			return fail(c, http.StatusInternalServerError, "Erro de instalação: "+err.Error())
		}
	}

	seedActors := []repository.Actor{
		{Name: "David Byrne", BirthYear: 1952},
		{Name: "Tom Hanks", BirthYear: 1956},
	}
	for i := range seedActors {
		if err := h.Actors.Create(ctx, &seedActors[i]); err != nil {
			return fail(c, http.StatusInternalServerError, "Erro de instalação: "+err.Error())
		}
	}

	oscar := repository.Oscar{NomePremio: "Melhor Ator", AnoRecebimento: 1995}
	if err := h.Oscars.Create(ctx, &oscar); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro de instalação: "+err.Error())
	}

	// Admin seeding is skipped when the account already exists.
	_, err := h.Users.GetByUsername(ctx, h.Cfg.AdminUsername)
	if errors.Is(err, repository.ErrUserNotFound) {
		if _, err := h.Users.Create(ctx, h.Cfg.AdminUsername, h.Cfg.AdminSenha, true, h.Cfg.BcryptCost); err != nil {
			return fail(c, http.StatusInternalServerError, "Erro de instalação: "+err.Error())
		}
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro de instalação: "+err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": true, "message": "Instalação concluída!"})
}
