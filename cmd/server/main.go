package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-ticket-desk/internal/config"
	"github.com/iliyamo/cinema-ticket-desk/internal/database"
	"github.com/iliyamo/cinema-ticket-desk/internal/handler"
	"github.com/iliyamo/cinema-ticket-desk/internal/middleware"
	"github.com/iliyamo/cinema-ticket-desk/internal/queue"
	"github.com/iliyamo/cinema-ticket-desk/internal/repository"
	"github.com/iliyamo/cinema-ticket-desk/internal/router"
	"github.com/iliyamo/cinema-ticket-desk/internal/service"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("db: %v", err)
		}
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb != nil {
		defer rdb.Close()
	}

	desk := service.NewTicketDesk(
		repository.NewCinemaRepo(db),
		repository.NewScreeningRepo(db),
		repository.NewTicketRepo(db),
	)
	if rdb != nil {
		desk.Cache = service.NewRedisCache(rdb, "desk", cfg.BrowseTTL)
	}
	if cfg.EventsEnabled {
		desk.Events = &service.AMQPPublisher{URL: cfg.AMQPURL, DialTimeout: cfg.AMQPDialWait}
		go queue.StartTicketConsumer(cfg.AMQPURL, cfg.EventLogDir)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e, router.Handlers{
		Health:  handler.Health(db),
		Browse:  handler.NewBrowseHandler(desk),
		Tickets: handler.NewTicketHandler(desk),
		Posters: handler.NewPosterHandler(cfg.PosterDir),
	},
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	go func() {
		log.Printf("listening on %s (env=%s)", cfg.Addr, cfg.Env)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
