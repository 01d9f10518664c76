package strava

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envKeyAccessToken  = "STRAVA_ACCESS_TOKEN"
	envKeyRefreshToken = "STRAVA_REFRESH_TOKEN"
)

// ReadTokensFromEnvFile читает пару токенов из KEY=value файла.
// Отсутствующий файл — не ошибка (пустые токены).
func ReadTokensFromEnvFile(path string) (accessToken, refreshToken string, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return "", "", nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return "", "", fmt.Errorf("read env file %s: %w", path, err)
	}
	return strings.TrimSpace(values[envKeyAccessToken]), strings.TrimSpace(values[envKeyRefreshToken]), nil
}

// RewriteTokensInEnvFile переписывает строки STRAVA_ACCESS_TOKEN и
// STRAVA_REFRESH_TOKEN на месте; остальные строки сохраняются байт в байт.
// Отсутствующие ключи дописываются в конец файла.
func RewriteTokensInEnvFile(path, accessToken, refreshToken string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			content := fmt.Sprintf("%s=%s\n%s=%s\n", envKeyAccessToken, accessToken, envKeyRefreshToken, refreshToken)
			return os.WriteFile(path, []byte(content), 0o600)
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	replacedAccess := false
	replacedRefresh := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, envKeyAccessToken+"="):
			lines[i] = envKeyAccessToken + "=" + accessToken
			replacedAccess = true
		case strings.HasPrefix(trimmed, envKeyRefreshToken+"="):
			lines[i] = envKeyRefreshToken + "=" + refreshToken
			replacedRefresh = true
		}
	}

	out := strings.Join(lines, "\n")
	if !replacedAccess {
		out = ensureTrailingNewline(out) + envKeyAccessToken + "=" + accessToken + "\n"
	}
	if !replacedRefresh {
		out = ensureTrailingNewline(out) + envKeyRefreshToken + "=" + refreshToken + "\n"
	}

	return os.WriteFile(path, []byte(out), 0o600)
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
