package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fdg312/coach-hub/internal/config"
)

var (
	// ErrReauthorizeRequired — refresh token отклонён провайдером.
	// Восстановление только через полную переавторизацию (cmd/authorize).
	ErrReauthorizeRequired = errors.New("strava refresh token rejected: re-authorize with cmd/authorize and cmd/exchange")

	// ErrNotAuthorized — нет ни access, ни refresh токена
	ErrNotAuthorized = errors.New("no strava credentials configured: run cmd/authorize first")
)

// TokenSource выдаёт валидный access token
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenManager хранит пару токенов, проверяет access token лёгким запросом
// к /athlete и при 401 один раз обменивает refresh token на новую пару.
// Новая пара переписывается в env-файл (две строки, остальное не трогается).
type TokenManager struct {
	cfg         config.StravaConfig
	httpClient  *http.Client
	probeClient *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewTokenManager(cfg config.StravaConfig) *TokenManager {
	accessToken := cfg.AccessToken
	refreshToken := cfg.RefreshToken

	// Креды из окружения имеют приоритет; env-файл — fallback
	if accessToken == "" && refreshToken == "" {
		fileAccess, fileRefresh, err := ReadTokensFromEnvFile(cfg.EnvFile)
		if err != nil {
			log.Printf("WARN strava: env file read failed: %v", err)
		} else {
			accessToken = fileAccess
			refreshToken = fileRefresh
		}
	}

	return &TokenManager{
		cfg:         cfg,
		httpClient:  &http.Client{},
		probeClient: &http.Client{Timeout: time.Duration(cfg.ProbeTimeoutSeconds) * time.Second},

		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// AccessToken возвращает валидный access token.
// Политика: кэшированный токен проверяется probe-запросом; 401 — невалиден,
// любая другая ошибка (сеть, таймаут) — токен считается валидным (fail open,
// осознанная мягкость, логируется).
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accessToken == "" && m.refreshToken == "" {
		return "", ErrNotAuthorized
	}

	if m.accessToken != "" {
		valid, err := m.probeToken(ctx, m.accessToken)
		if err != nil {
			// fail open: сетевая ошибка не означает протухший токен
			log.Printf("WARN strava: token probe failed, assuming token still valid: %v", err)
			return m.accessToken, nil
		}
		if valid {
			return m.accessToken, nil
		}
	}

	// Невалидный или отсутствующий access token: ровно одна попытка refresh
	if err := m.refreshLocked(ctx); err != nil {
		return "", err
	}
	return m.accessToken, nil
}

// probeToken — лёгкая проверка токена запросом профиля атлета.
// false только при HTTP 401; прочие статусы считаются "валиден".
func (m *TokenManager) probeToken(ctx context.Context, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.APIBaseURL+"/athlete", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.probeClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode != http.StatusUnauthorized, nil
}

// refreshLocked обменивает refresh token на новую пару. Вызывать под mu.
func (m *TokenManager) refreshLocked(ctx context.Context) error {
	if m.refreshToken == "" {
		return ErrReauthorizeRequired
	}

	form := url.Values{}
	form.Set("client_id", m.cfg.ClientID)
	form.Set("client_secret", m.cfg.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", m.refreshToken)

	tokens, err := postTokenForm(ctx, m.httpClient, m.cfg.TokenURL, form)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
			// Сам refresh token отклонён — фатально
			return fmt.Errorf("%w (provider said: %s)", ErrReauthorizeRequired, apiErr.Body)
		}
		return fmt.Errorf("token refresh failed (retryable): %w", err)
	}

	m.accessToken = tokens.AccessToken
	m.refreshToken = tokens.RefreshToken

	if err := RewriteTokensInEnvFile(m.cfg.EnvFile, tokens.AccessToken, tokens.RefreshToken); err != nil {
		// Токены в памяти уже валидны; потеря файла — деградация, не отказ
		log.Printf("WARN strava: failed to persist refreshed tokens to %s: %v", m.cfg.EnvFile, err)
	} else {
		log.Printf("strava: tokens refreshed and persisted to %s", m.cfg.EnvFile)
	}

	return nil
}

// ExchangeAuthorizationCode обменивает authorization code на пару токенов
// (authorization-code grant, используется cmd/exchange).
func ExchangeAuthorizationCode(ctx context.Context, cfg config.StravaConfig, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)

	client := &http.Client{Timeout: 30 * time.Second}
	return postTokenForm(ctx, client, cfg.TokenURL, form)
}

func postTokenForm(ctx context.Context, client *http.Client, tokenURL string, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var tokens TokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	return &tokens, nil
}
