package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fdg312/coach-hub/internal/auth"
	"github.com/fdg312/coach-hub/internal/blob"
	"github.com/fdg312/coach-hub/internal/config"
	"github.com/fdg312/coach-hub/internal/profile"
	"github.com/fdg312/coach-hub/internal/progress"
	"github.com/fdg312/coach-hub/internal/rag"
	"github.com/fdg312/coach-hub/internal/reports"
	"github.com/fdg312/coach-hub/internal/storage"
	"github.com/fdg312/coach-hub/internal/storage/memory"
	"github.com/fdg312/coach-hub/internal/storage/postgres"
	"github.com/fdg312/coach-hub/internal/strava"
	"github.com/fdg312/coach-hub/internal/tools"
	"github.com/fdg312/coach-hub/internal/userctx"
)

// Владелец данных, когда аутентификация выключена (локальный одиночный режим)
const localOwnerUserID = "local"

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	registry       *tools.Registry
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Собираем сервисы и каталог инструментов
	if err := s.initServices(); err != nil {
		return nil, err
	}

	// Регистрируем маршруты
	s.routes()
	return s, nil
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
	} else {
		log.Println("Подключение к PostgreSQL...")
		ctx := context.Background()
		pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
		if err != nil {
			log.Printf("Ошибка подключения к PostgreSQL: %v", err)
			log.Println("Fallback на in-memory storage")
			s.storage = memory.New()
		} else {
			log.Println("PostgreSQL подключен успешно")
			s.storage = pgStorage
		}
	}
}

// initServices собирает сервисный граф поверх storage
func (s *Server) initServices() error {
	tokenManager := strava.NewTokenManager(s.config.Strava)
	stravaClient := strava.NewClient(s.config.Strava, tokenManager)

	profileService := profile.NewService(s.storage)
	progressService := progress.NewService(s.storage, profileService, s.config.PlannedWorkoutsPerWeek)

	var ingester rag.Ingester
	if s.config.RAGIngestMode == config.IngestModeFetch {
		log.Println("Knowledge ingest: режим fetch (реальная загрузка)")
		ingester = rag.NewFetchIngester(time.Duration(s.config.RAGFetchTimeoutSeconds) * time.Second)
	} else {
		log.Println("Knowledge ingest: режим mock (контент-заглушки)")
		ingester = rag.MockIngester{}
	}
	ragService := rag.NewService(s.storage, ingester, s.config.RAGMaxDocumentChars)

	blobStore, blobMode, err := blob.NewBlobStore(s.config.Blob, s.config.ReportsDir, log.Default())
	if err != nil {
		return fmt.Errorf("blob store init: %w", err)
	}
	log.Printf("Blob store: mode=%s", blobMode)
	reportsService := reports.NewService(profileService, progressService, blobStore, s.config.Blob.S3.PresignTTLSeconds)

	s.registry = tools.NewCatalog(tools.Services{
		Strava:   stravaClient,
		Profiles: profileService,
		Progress: progressService,
		RAG:      ragService,
		Reports:  reportsService,
	})
	return nil
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Tools API
	// GET /v1/tools - tool catalog with input schemas
	s.mux.HandleFunc("GET /v1/tools", s.handleListTools)

	// POST /v1/tools/{name} - invoke one tool
	s.mux.HandleFunc("POST /v1/tools/{name}", s.handleCallTool)
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// handleListTools отдаёт каталог инструментов
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"tools": s.registry.List(),
	})
}

type callToolRequest struct {
	Arguments map[string]any `json:"arguments"`
}

// handleCallTool выполняет инструмент. HTTP-статус всегда 200 для
// известного формата запроса: ошибки инструмента уходят в конверте
// с is_error, а не транспортным статусом.
func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req callToolRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":    "invalid_json",
					"message": "request body must be a JSON object",
				},
			})
			return
		}
	}

	owner, ok := userctx.GetUserID(r.Context())
	if !ok || owner == "" {
		owner = localOwnerUserID
	}

	result := s.registry.Dispatch(r.Context(), owner, name, req.Arguments)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	// Build middleware chain (outermost first): CORS → Rate Limit → Auth → Router
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Tools API: http://localhost%s/v1/tools\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Handler возвращает полный обработчик сервера (используется в тестах)
func (s *Server) Handler() http.Handler {
	return s.mux
}
