package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartacaixa/filmlog/internal/config"
	"github.com/cartacaixa/filmlog/internal/middleware"
	"github.com/cartacaixa/filmlog/internal/repository"
	"github.com/cartacaixa/filmlog/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Senha    string `json:"senha"`
	EhAdmin  bool   `json:"ehAdmin"`
}
type verifyTokenReq struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login.  It checks the senha against the
// stored bcrypt hash and answers with a fresh one-hour access token.  Bad
// username and bad senha produce the same 401 so the endpoint does not leak
// which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Senha == "" {
		return fail(c, http.StatusBadRequest, "Username e senha são obrigatórios.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusUnauthorized, "Login inválido! User ou senha errados.")
		}
		return fail(c, http.StatusInternalServerError, "Erro na autenticação, tente novamente.")
	}
	if !utils.VerifySenha(u.SenhaHash, req.Senha) {
		return fail(c, http.StatusUnauthorized, "Login inválido! User ou senha errados.")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.EhAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro na autenticação, tente novamente.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  true,
		"message": "LOG DE FILMES ABERTO",
		"token":   access.Token,
	})
}

// Registro handles POST /api/auth/registro and creates a regular account.
// The ehAdmin flag in the body is honored, as in the original service; admin
// creation through /criaAdm is the gated path.
func (h *AuthHandler) Registro(c echo.Context) error {
	return h.createUser(c, false)
}

// CriaAdm handles POST /api/auth/criaAdm (admin-only, enforced by the
// router) and creates another admin account.
func (h *AuthHandler) CriaAdm(c echo.Context) error {
	return h.createUser(c, true)
}

func (h *AuthHandler) createUser(c echo.Context, forceAdmin bool) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Senha == "" {
		return fail(c, http.StatusBadRequest, "Username e senha são obrigatórios.")
	}
	ehAdmin := req.EhAdmin || forceAdmin

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Senha, ehAdmin, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return fail(c, http.StatusBadRequest, "Usuário já existente.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao criar usuário!")
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": true, "user": u})
}

// DeletaUser handles DELETE /api/auth/deletaUser/:id (admin-only).  Admin
// accounts cannot be deleted, not even by another admin.
func (h *AuthHandler) DeletaUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "Usuário não encontrado!")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao deletar usuário.")
	}
	if u.EhAdmin {
		return fail(c, http.StatusForbidden, "Não é permitido deletar outro admin!")
	}
	if _, err := h.Users.Delete(ctx, id); err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao deletar usuário.")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "message": "Usuário deletado com sucesso!"})
}

// AlteraDados handles PUT /api/auth/alteraDados/:id.  A user may update
// their own credentials; admins may update anyone's.  Omitted fields keep
// their current value.
func (h *AuthHandler) AlteraDados(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	callerID, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Token não fornecido.")
	}
	if callerID != id && !middleware.IsAdmin(c) {
		return fail(c, http.StatusForbidden, "Usuários não-admins não podem atualizar dados de outros usuários.")
	}

	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "Usuário não encontrado.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao atualizar dados do usuário.")
	}

	// Merge: blank fields keep the stored value.
	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = u.Username
	}
	senhaHash := u.SenhaHash
	if req.Senha != "" {
		senhaHash, err = utils.HashSenha(req.Senha, h.Cfg.BcryptCost)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "Erro ao atualizar dados do usuário.")
		}
	}

	if err := h.Users.UpdateCredentials(ctx, id, username, senhaHash); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return fail(c, http.StatusBadRequest, "Usuário já existente.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao atualizar dados do usuário.")
	}
	u.Username = username
	return c.JSON(http.StatusOK, echo.Map{
		"status":  true,
		"message": "Usuário atualizado com sucesso!",
		"user":    u,
	})
}

// VerificaToken handles POST /api/auth/verificaToken.  It validates a token
// sent in the body, without touching the Authorization header, so clients
// can probe stored tokens before using them.
func (h *AuthHandler) VerificaToken(c echo.Context) error {
	var req verifyTokenReq
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return fail(c, http.StatusBadRequest, "É obrigatório inserir token!")
	}
	if _, err := utils.ParseAccessToken(h.Cfg.JWTSecret, req.Token); err != nil {
		return fail(c, http.StatusUnauthorized, "O token é inválido ou já expirou")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": true, "message": "Token validado!"})
}
