// Одноразовый шаг OAuth-бутстрапа: печатает URL авторизации Strava.
// Открыть в браузере, одобрить доступ, затем передать redirect URL
// в cmd/exchange.
package main

import (
	"fmt"
	"log"
	"net/url"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/coach-hub/internal/config"
)

func main() {
	cfg := config.Load()

	if cfg.Strava.ClientID == "" {
		log.Fatal("STRAVA_CLIENT_ID is not set")
	}

	q := url.Values{}
	q.Set("client_id", cfg.Strava.ClientID)
	q.Set("redirect_uri", cfg.Strava.RedirectURI)
	q.Set("response_type", "code")
	q.Set("approval_prompt", "force")
	q.Set("scope", "activity:read_all,profile:read_all")

	fmt.Println("Open this URL in your browser and approve access:")
	fmt.Printf("%s?%s\n", cfg.Strava.AuthorizeURL, q.Encode())
	fmt.Println()
	fmt.Println("After approval you will be redirected. Copy the full redirect URL and run:")
	fmt.Println("  go run ./cmd/exchange '<redirect url>'")
}
