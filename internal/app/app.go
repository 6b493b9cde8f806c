package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aidar/team-users-service/internal/config"
	"github.com/aidar/team-users-service/internal/domain"
	"github.com/aidar/team-users-service/internal/handler"
	"github.com/aidar/team-users-service/internal/logger"
	"github.com/aidar/team-users-service/internal/middleware"
	"github.com/aidar/team-users-service/internal/repository/postgres"
	"github.com/aidar/team-users-service/internal/service"
	"github.com/aidar/team-users-service/migrations"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	router chi.Router
	server *http.Server
	logger *zap.Logger

	authService *service.AuthService
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return NewWithLogger(cfg, log), nil
}

// NewWithLogger создает приложение с готовым логгером
func NewWithLogger(cfg *config.Config, log *zap.Logger) *App {
	return &App{
		config: cfg,
		logger: log,
	}
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if a.config.Database.AutoMigrate {
		if err := migrations.Up(ctx, a.db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		a.logger.Info("Migrations applied")
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database",
		zap.String("host", a.config.Database.Host),
		zap.String("database", a.config.Database.Name),
	)
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Репозитории (только чтение)
	teamUsersRepo := postgres.NewTeamUsersRepository(a.db)
	teamRepo := postgres.NewTeamRepository(a.db)
	membershipRepo := postgres.NewMembershipRepository(a.db)
	apiKeyRepo := postgres.NewAPIKeyRepository(a.db)

	// Сервисы
	teamUsersService := service.NewTeamUsersService(teamUsersRepo)
	a.authService = service.NewAuthService(
		apiKeyRepo,
		a.config.Auth.APIKeyPrefix,
		a.config.Auth.JWTSecret,
		a.config.Auth.GetExpiration(),
	)

	// HTTP обработчики
	teamUsersHandler := handler.NewTeamUsersHandler(teamUsersService, a.logger)

	// Guard'ы: аутентификация и роль в команде из пути
	authenticate := middleware.Authenticate(a.authService, a.logger)
	requireTeamMember := middleware.RequireTeamRole(teamRepo, membershipRepo, domain.TeamRoleMember, a.logger)

	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", zap.Error(err))
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v2/teams/{teamId}", func(r chi.Router) {
		r.Use(authenticate, requireTeamMember)

		r.Get("/users", teamUsersHandler.GetTeamUsers)
	})

	a.router = r

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", zap.String("addr", addr))
}

// Router возвращает настроенный роутер; доступен после Initialize
func (a *App) Router() http.Handler {
	return a.router
}

// AuthService возвращает сервис аутентификации; доступен после Initialize
func (a *App) AuthService() *service.AuthService {
	return a.authService
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	_ = a.logger.Sync()
	return nil
}
