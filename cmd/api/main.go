package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/LIL3ASTARD33/CoinClash/internal/config"
	"github.com/LIL3ASTARD33/CoinClash/internal/fair"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/event"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/fair/commitment"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/fair/rotate"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/fair/verify"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/game/play"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/job"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/mysql"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/handlers/user/balance"
	mwlogger "github.com/LIL3ASTARD33/CoinClash/internal/http-server/middleware/logger"
	"github.com/LIL3ASTARD33/CoinClash/internal/http-server/middleware/ratelimit"
	"github.com/LIL3ASTARD33/CoinClash/internal/lib/logger/sl"
	"github.com/LIL3ASTARD33/CoinClash/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/pusher/pusher-http-go/v5"
	"golang.org/x/exp/slog"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting server...", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4,utf8&parseTime=True&loc=Local",
		cfg.MySQL.User, cfg.MySQL.Password, cfg.MySQL.Host, cfg.MySQL.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if err = db.Ping(); err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	handler := mysql.New(db)

	publisher, err := setupPublisher(cfg, log)
	if err != nil {
		log.Error("Failed to init event publisher", sl.Err(err))
		os.Exit(1)
	}

	bustParams := fair.BustParams{
		Start:    config.FairGameConfig.BustStart,
		Exponent: config.FairGameConfig.BustExponent,
		Max:      config.FairGameConfig.BustMax,
	}

	fairManager, err := fair.NewManager(log, bustParams, config.FairGameConfig.MaxClientSeedLen)
	if err != nil {
		log.Error("Failed to init fair manager", sl.Err(err))
		os.Exit(1)
	}

	roundRepo := repository.NewRoundRepository(*handler)
	epochRepo := repository.NewSeedEpochRepository(*handler)
	userRepo := repository.NewUserRepository(*handler)

	job.Queue = make(job.JobQueue, 100)
	job.NewWorkerPool(4, job.Queue).Start()

	userBalance := balance.NewBalance(userRepo, log, publisher)
	playRound := play.NewPlay(log, fairManager, roundRepo, *userRepo, userBalance, publisher)
	fairCommitment := commitment.NewCommitment(log, fairManager)
	fairRotate := rotate.NewRotate(log, fairManager, epochRepo, publisher)
	fairVerify := verify.NewVerify(log, fairManager.BustParams())

	limiter := ratelimit.NewWindowLimiter(60, time.Minute)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/fair/commitment", fairCommitment.New())
	router.Post("/fair/rotate", fairRotate.New())
	router.Post("/fair/verify", fairVerify.New())

	router.Group(func(r chi.Router) {
		r.Use(ratelimit.New(limiter))
		r.Post("/play", playRound.New())
	})

	log.Info("Server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err = srv.ListenAndServe(); err != nil {
		log.Error("Server failed", sl.Err(err))
	}

	log.Error("Server stopped")
}

func setupPublisher(cfg *config.Config, log *slog.Logger) (event.Publisher, error) {
	if cfg.Pusher.Enabled {
		return event.NewPusherEvent(log, &pusher.Client{
			AppID:   cfg.Pusher.AppID,
			Key:     cfg.Pusher.Key,
			Secret:  cfg.Pusher.Secret,
			Cluster: cfg.Pusher.Cluster,
		}), nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSServer.URL, nil)
	if err != nil {
		return nil, err
	}

	return event.NewWSEvent(log, conn), nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
