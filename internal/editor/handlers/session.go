package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"blueprint/internal/auth/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Session resolution
// ============================================================

const LoginPath = "/login"

const sessionKey = "session"

var ErrUnauthenticated = errors.New("unauthenticated")

// SessionResolver определяет пользователя по токену.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (models.Session, error)
}

// AuthClient спрашивает сервис авторизации о владельце токена.
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (a *AuthClient) Resolve(ctx context.Context, token string) (models.Session, error) {
	endpoint := fmt.Sprintf("%s/internal/sessions/%s", a.baseURL, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Session{}, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return models.Session{}, fmt.Errorf("auth service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.Session{}, ErrUnauthenticated
	case resp.StatusCode >= 300:
		return models.Session{}, fmt.Errorf("auth service status %d", resp.StatusCode)
	}

	var s models.Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if !s.Authenticated() {
		return models.Session{}, ErrUnauthenticated
	}
	return s, nil
}

// RequireSession пропускает только запросы с действующим токеном;
// остальные получают 401 и указание перейти на страницу входа.
func RequireSession(resolver SessionResolver) fiber.Handler {
	return NewSessionGate(resolver, nil).Handler()
}

// ============================================================
// Session Gate
// ============================================================

// SessionGate проверяет токены и запоминает, кому они принадлежали.
// Когда известный токен перестаёт действовать (выход или отзыв) и у
// пользователя не осталось других токенов, вызывается onEnd.
type SessionGate struct {
	resolver SessionResolver
	onEnd    func(userID string)

	mu     sync.Mutex
	tokens map[string]string
}

func NewSessionGate(resolver SessionResolver, onEnd func(userID string)) *SessionGate {
	return &SessionGate{
		resolver: resolver,
		onEnd:    onEnd,
		tokens:   make(map[string]string),
	}
}

func (g *SessionGate) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return redirectToLogin(c)
		}

		session, err := g.resolver.Resolve(c.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				g.forget(token)
			} else {
				log.Printf("[EDITOR] session resolve: %v", err)
			}
			return redirectToLogin(c)
		}

		g.remember(token, session.UserID)
		c.Locals(sessionKey, session)
		return c.Next()
	}
}

func (g *SessionGate) remember(token, userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.tokens[token]; !ok {
		// заголовки fiber ссылаются на буфер запроса
		g.tokens[strings.Clone(token)] = userID
	}
}

func (g *SessionGate) forget(token string) {
	g.mu.Lock()
	userID, ok := g.tokens[token]
	if !ok {
		g.mu.Unlock()
		return
	}
	delete(g.tokens, token)
	for _, other := range g.tokens {
		if other == userID {
			g.mu.Unlock()
			return
		}
	}
	g.mu.Unlock()

	log.Printf("[EDITOR] session ended for user %s", userID)
	if g.onEnd != nil {
		g.onEnd(userID)
	}
}

func redirectToLogin(c fiber.Ctx) error {
	c.Set("Location", LoginPath)
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "redirect": LoginPath})
}

func bearerToken(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return token, token != ""
}

func sessionFrom(c fiber.Ctx) models.Session {
	s, _ := c.Locals(sessionKey).(models.Session)
	return s
}
