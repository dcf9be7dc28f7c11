package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"blueprint/internal/auth/models"
	"blueprint/internal/auth/repository"
	"blueprint/internal/auth/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Auth Handler
// ============================================================

type AuthHandler struct {
	repo     *repository.Repository
	sessions *service.SessionManager
}

func NewAuthHandler(repo *repository.Repository, sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{
		repo:     repo,
		sessions: sessions,
	}
}

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

var signupMessages = map[error]string{
	service.ErrInvalidEmail:     "Please enter a valid email address.",
	service.ErrPasswordTooShort: "Password must be at least 6 characters.",
	service.ErrPasswordMismatch: "Passwords do not match.",
}

// Signup регистрирует пользователя и сразу выдаёт токен.
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	log.Printf("[AUTH] Signup request")

	var req signupRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := service.ValidateSignup(req.Email, req.Password, req.ConfirmPassword); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": signupMessages[err]})
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		log.Printf("[AUTH] %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not create account"})
	}

	user, err := h.repo.CreateUser(c.Context(), req.Email, hash)
	if errors.Is(err, repository.ErrEmailTaken) {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "This email is already in use. Please try logging in."})
	}
	if err != nil {
		log.Printf("[AUTH] create user: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not create account"})
	}

	log.Printf("[AUTH] User %s signed up", user.ID)
	return c.Status(http.StatusCreated).JSON(loginResponse{
		Token: h.sessions.Issue(user),
		User:  mapUser(user),
	})
}

// Login выдает токен по паре email/password.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	log.Printf("[AUTH] Login request")

	var req loginRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "email and password required"})
	}

	user, err := h.repo.GetByEmail(c.Context(), req.Email)
	if err != nil || !service.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	return c.JSON(loginResponse{
		Token: h.sessions.Issue(user),
		User:  mapUser(user),
	})
}

// Logout отзывает текущий токен.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	h.sessions.Revoke(token)
	return c.SendStatus(http.StatusNoContent)
}

// Me возвращает владельца токена.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	session, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	user, err := h.repo.GetByID(c.Context(), session.UserID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(mapUser(user))
}

// ResolveSessionInternal: для межсервисного общения (редактор).
func (h *AuthHandler) ResolveSessionInternal(c fiber.Ctx) error {
	session, ok := h.sessions.Resolve(c.Params("token"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.JSON(session)
}

// ============================================================
// Helpers
// ============================================================

func (h *AuthHandler) authorize(c fiber.Ctx) (models.Session, bool) {
	token, ok := bearerToken(c)
	if !ok {
		return models.Session{}, false
	}
	return h.sessions.Resolve(token)
}

func bearerToken(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return token, token != ""
}

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errors.New("invalid json")
	}
	return nil
}

func mapUser(u *models.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
