// Второй шаг OAuth-бутстрапа: принимает redirect URL единственным
// аргументом, достаёт ?code= и обменивает его на пару токенов.
// Токены записываются в env-файл (остальные строки не трогаются).
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/coach-hub/internal/config"
	"github.com/fdg312/coach-hub/internal/strava"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: go run ./cmd/exchange '<redirect url>'")
	}

	cfg := config.Load()
	if cfg.Strava.ClientID == "" || cfg.Strava.ClientSecret == "" {
		log.Fatal("STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET must be set")
	}

	code, err := extractCode(os.Args[1])
	if err != nil {
		log.Fatalf("bad redirect url: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokens, err := strava.ExchangeAuthorizationCode(ctx, cfg.Strava, code)
	if err != nil {
		log.Fatalf("token exchange failed: %v", err)
	}

	if err := strava.RewriteTokensInEnvFile(cfg.Strava.EnvFile, tokens.AccessToken, tokens.RefreshToken); err != nil {
		log.Fatalf("failed to persist tokens to %s: %v", cfg.Strava.EnvFile, err)
	}

	fmt.Printf("Tokens saved to %s (scope: %s)\n", cfg.Strava.EnvFile, tokens.Scope)
	if tokens.ExpiresAt > 0 {
		fmt.Printf("Access token expires at %s\n", time.Unix(tokens.ExpiresAt, 0).Format(time.RFC3339))
	}
}

func extractCode(redirectURL string) (string, error) {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return "", err
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return "", fmt.Errorf("no ?code= parameter in %q", redirectURL)
	}
	return code, nil
}
