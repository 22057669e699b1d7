package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"tenniscourt/internal/config"
	"tenniscourt/internal/database"
	"tenniscourt/internal/domain"
	"tenniscourt/internal/middleware"
	"tenniscourt/internal/modules/booking"
	"tenniscourt/internal/modules/catalog"
	"tenniscourt/internal/modules/feed"
	"tenniscourt/internal/modules/people"
	"tenniscourt/internal/pkg/response"
	"tenniscourt/internal/repository"
	"tenniscourt/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := repository.NewStore(db)
	if _, err := store.GetFacility(ctx); errors.Is(err, domain.ErrNotFound) {
		if err := store.SaveFacility(ctx, cfg.Facility); err != nil {
			log.Fatal("save facility: ", err)
		}
		log.Println("facility configuration stored from environment")
	} else if err != nil {
		log.Fatal(err)
	}

	sess, err := session.Load(ctx, store, cfg.Facility)
	if err != nil {
		log.Fatal("load session: ", err)
	}

	hub := feed.NewHub()
	defer hub.Close()

	bookingHandler := booking.NewHandler(booking.NewService(sess, store, hub))
	catalogHandler := catalog.NewHandler(catalog.NewService(sess, store))
	peopleHandler := people.NewHandler(people.NewService(sess, store))
	feedHandler := feed.NewHandler(hub, cfg.CORSOrigins)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "subscribers": hub.Count()})
	})

	v1 := r.Group("/api/v1")
	{
		peopleHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		feedHandler.RegisterRoutes(v1)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s env=%s", cfg.HTTPAddr, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
