package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

const (
	IngestModeMock  = "mock"
	IngestModeFetch = "fetch"
)

type S3Config struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PublicBaseURL     string
	PresignTTLSeconds int
}

func (c S3Config) MissingRequired() []string {
	missing := make([]string, 0, 5)
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "S3_REGION")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

// DiagnosticsSummary returns a detailed summary for logging (no secrets)
func (c S3Config) DiagnosticsSummary() string {
	accessKeyStatus := "not set"
	if strings.TrimSpace(c.AccessKeyID) != "" {
		accessKeyStatus = "set"
	}
	secretKeyStatus := "not set"
	if strings.TrimSpace(c.SecretAccessKey) != "" {
		secretKeyStatus = "set"
	}

	return fmt.Sprintf("endpoint=%s region=%s bucket=%s presign_ttl=%ds access_key_id=%s secret_access_key=%s",
		nonEmptyOrDash(c.Endpoint),
		nonEmptyOrDash(c.Region),
		nonEmptyOrDash(c.Bucket),
		c.PresignTTLSeconds,
		accessKeyStatus,
		secretKeyStatus,
	)
}

func nonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

type BlobConfig struct {
	Mode string // local|s3|auto
	S3   S3Config
}

// StravaConfig содержит креды и эндпоинты Strava API
type StravaConfig struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string

	// EnvFile — файл KEY=value, в котором перезаписываются токены при refresh
	EnvFile string

	APIBaseURL          string
	TokenURL            string
	AuthorizeURL        string
	RedirectURI         string
	ProbeTimeoutSeconds int
}

// Config содержит конфигурацию приложения
type Config struct {
	Env      string // local | staging | prod
	Port     int
	LogLevel string

	// Database
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string // DATABASE_URL as provided
	DatabaseURLPooled string // DATABASE_URL_POOLED as provided
	DatabaseURLDirect string // for migrations / DDL (may be empty)

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Strava
	Strava StravaConfig

	// Coaching
	PlannedWorkoutsPerWeek int

	// Knowledge base / retrieval
	RAGIngestMode          string // mock | fetch
	RAGFetchTimeoutSeconds int
	RAGMaxDocumentChars    int

	// Reports
	ReportsDir string
	Blob       BlobConfig

	// Authentication
	AuthMode      string // none | dev
	AuthRequired  bool
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Migrations
	RunMigrationsOnStartup bool
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	// APP_ENV (fallback to ENV for backward compat, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	// PORT (default: 8080)
	port := envInt("PORT", 8080)

	// LOG_LEVEL (default: debug)
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	// ---------- Database ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	// ---------- Migrations ----------
	runMigrationsOnStartup := parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP")

	// ---------- CORS ----------
	corsOrigins := parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env)
	corsAllowCreds := os.Getenv("CORS_ALLOW_CREDENTIALS") == "1"

	// ---------- Rate Limiting ----------
	rateLimitRPS := envInt("RATE_LIMIT_RPS", 0)
	rateLimitBurst := envInt("RATE_LIMIT_BURST", 0)

	// ---------- Strava ----------
	stravaEnvFile := strings.TrimSpace(os.Getenv("STRAVA_ENV_FILE"))
	if stravaEnvFile == "" {
		stravaEnvFile = ".env"
	}

	stravaAPIBase := strings.TrimSpace(os.Getenv("STRAVA_API_BASE_URL"))
	if stravaAPIBase == "" {
		stravaAPIBase = "https://www.strava.com/api/v3"
	}

	stravaTokenURL := strings.TrimSpace(os.Getenv("STRAVA_TOKEN_URL"))
	if stravaTokenURL == "" {
		stravaTokenURL = "https://www.strava.com/oauth/token"
	}

	stravaAuthorizeURL := strings.TrimSpace(os.Getenv("STRAVA_AUTHORIZE_URL"))
	if stravaAuthorizeURL == "" {
		stravaAuthorizeURL = "https://www.strava.com/oauth/authorize"
	}

	stravaRedirectURI := strings.TrimSpace(os.Getenv("STRAVA_REDIRECT_URI"))
	if stravaRedirectURI == "" {
		stravaRedirectURI = "http://localhost/exchange_token"
	}

	stravaProbeTimeout := envInt("STRAVA_PROBE_TIMEOUT_SECONDS", 5)
	if stravaProbeTimeout <= 0 {
		stravaProbeTimeout = 5
	}

	stravaCfg := StravaConfig{
		ClientID:            strings.TrimSpace(os.Getenv("STRAVA_CLIENT_ID")),
		ClientSecret:        strings.TrimSpace(os.Getenv("STRAVA_CLIENT_SECRET")),
		AccessToken:         strings.TrimSpace(os.Getenv("STRAVA_ACCESS_TOKEN")),
		RefreshToken:        strings.TrimSpace(os.Getenv("STRAVA_REFRESH_TOKEN")),
		EnvFile:             stravaEnvFile,
		APIBaseURL:          stravaAPIBase,
		TokenURL:            stravaTokenURL,
		AuthorizeURL:        stravaAuthorizeURL,
		RedirectURI:         stravaRedirectURI,
		ProbeTimeoutSeconds: stravaProbeTimeout,
	}

	// ---------- Coaching ----------
	plannedWorkouts := envInt("PLANNED_WORKOUTS_PER_WEEK", 4)
	if plannedWorkouts <= 0 {
		plannedWorkouts = 4
	}

	// ---------- Knowledge base ----------
	ragIngestMode := strings.ToLower(strings.TrimSpace(os.Getenv("RAG_INGEST_MODE")))
	if ragIngestMode == "" {
		ragIngestMode = IngestModeMock
	}
	if ragIngestMode != IngestModeMock && ragIngestMode != IngestModeFetch {
		log.Printf("WARNING: unknown RAG_INGEST_MODE=%q, fallback to %s", ragIngestMode, IngestModeMock)
		ragIngestMode = IngestModeMock
	}

	ragFetchTimeout := envInt("RAG_FETCH_TIMEOUT_SECONDS", 15)
	if ragFetchTimeout <= 0 {
		ragFetchTimeout = 15
	}

	ragMaxDocChars := envInt("RAG_MAX_DOCUMENT_CHARS", 4000)
	if ragMaxDocChars <= 0 {
		ragMaxDocChars = 4000
	}

	// ---------- Reports / Blob ----------
	reportsDir := strings.TrimSpace(os.Getenv("REPORTS_DIR"))
	if reportsDir == "" {
		reportsDir = "reports"
	}

	blobMode := parseBlobMode("BLOB_MODE", BlobModeLocal)

	// S3_PRESIGN_TTL_SECONDS (default: 900, enforce > 0)
	s3PresignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if s3PresignTTL <= 0 {
		s3PresignTTL = 900
	}

	s3Cfg := S3Config{
		Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
		Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
		AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
		SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
		PublicBaseURL:     strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
		PresignTTLSeconds: s3PresignTTL,
	}

	// ---------- Auth ----------
	authMode := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE")))
	if authMode == "" {
		authMode = "none"
	}
	if authMode != "none" && authMode != "dev" {
		log.Printf("WARNING: unknown AUTH_MODE=%q, fallback to none", authMode)
		authMode = "none"
	}
	authRequired := authMode != "none" && (os.Getenv("AUTH_REQUIRED") == "1" || strings.EqualFold(os.Getenv("AUTH_REQUIRED"), "true"))

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != "local" {
		log.Println("WARNING: JWT_SECRET is set to 'change_me' in non-local environment!")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "coach-hub"
	}

	// JWT_TTL_MINUTES (default: 10080 = 7 days)
	jwtTTLMinutes := envInt("JWT_TTL_MINUTES", 10080)

	return &Config{
		Env:               env,
		Port:              port,
		LogLevel:          logLevel,
		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		CORSAllowedOrigins:   corsOrigins,
		CORSAllowCredentials: corsAllowCreds,

		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,

		Strava: stravaCfg,

		PlannedWorkoutsPerWeek: plannedWorkouts,

		RAGIngestMode:          ragIngestMode,
		RAGFetchTimeoutSeconds: ragFetchTimeout,
		RAGMaxDocumentChars:    ragMaxDocChars,

		ReportsDir: reportsDir,
		Blob: BlobConfig{
			Mode: blobMode,
			S3:   s3Cfg,
		},

		AuthMode:      authMode,
		AuthRequired:  authRequired,
		JWTSecret:     jwtSecret,
		JWTIssuer:     jwtIssuer,
		JWTTTLMinutes: jwtTTLMinutes,

		RunMigrationsOnStartup: runMigrationsOnStartup,
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS env var.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:8081"}
		}
		return nil // prod: deny by default
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func parseBlobMode(key string, defaultVal string) string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if mode == "" {
		return defaultVal
	}
	switch mode {
	case BlobModeLocal, BlobModeS3, BlobModeAuto:
		return mode
	default:
		log.Printf("WARNING: unknown %s=%q, fallback to %s", key, mode, defaultVal)
		return defaultVal
	}
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
