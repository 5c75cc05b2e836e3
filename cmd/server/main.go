package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"mindscreen/internal/config"
	"mindscreen/internal/engine"
	"mindscreen/internal/platform/cache"
	"mindscreen/internal/report"
	"mindscreen/internal/screening"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Log.Level)
	defer logger.Sync()

	// 1. Infrastructure
	db, err := connectDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()

	runMigrations(cfg, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var historyCache screening.HistoryCache
	if err := redisClient.Ping(redisClient.Context()).Err(); err != nil {
		logger.Warn("redis unavailable, history caching disabled", zap.Error(err))
	} else {
		historyCache = cache.NewHistoryCache(redisClient, cfg.HistoryCacheTTL, logger)
	}

	// 2. Clients
	engineClient := engine.NewClient(cfg.Engine.BaseURL, cfg.Engine.Timeout, logger)

	// 3. Services
	repo := screening.NewRepository(db)
	screeningSvc := screening.NewService(repo, engineClient, historyCache, logger)
	screeningHandler := screening.NewHandler(screeningSvc)

	reportSvc := report.NewService(repo, logger)
	reportHandler := report.NewHandler(reportSvc)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-User-ID, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		screening.RegisterRoutes(r, screeningHandler)
		report.RegisterRoutes(r, reportHandler)
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zapCfg.Level = lvl
	}
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func connectDB(connStr string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			logger.Info("connected to database")
			return db, nil
		}
		logger.Info("waiting for database", zap.Int("attempt", i+1))
		time.Sleep(2 * time.Second)
	}
	return nil, err
}

func runMigrations(cfg *config.Config, logger *zap.Logger) {
	m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("migration init failed", zap.Error(err))
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Warn("migration up failed", zap.Error(err))
		return
	}
	logger.Info("migrations applied")
}
