package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/config"
	"github.com/aurora-nuptials/marketplace/internal/database"
	"github.com/aurora-nuptials/marketplace/internal/handler"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
	"github.com/aurora-nuptials/marketplace/internal/queue"
	"github.com/aurora-nuptials/marketplace/internal/repository"
	"github.com/aurora-nuptials/marketplace/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db, cfg.DBName, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis is optional: without it the API serves fresh responses and
	// skips rate limiting.
	rdb := config.NewRedisClient()
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	couples := repository.NewCoupleRepo(db)
	vendors := repository.NewVendorRepo(db)
	venues := repository.NewVenueRepo(db)
	bookings := repository.NewBookingRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	registry := repository.NewRegistryRepo(db)
	reviews := repository.NewReviewRepo(db)

	subjects := &handler.SubjectLoader{Couples: couples, Vendors: vendors}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	coupleHandler := handler.NewCoupleHandler(users, couples, bookings, favorites, registry, subjects)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterVenues(e, handler.NewVenueHandler(venues, subjects), coupleHandler, cfg.JWTSecret, cache)
	router.RegisterVendors(e, handler.NewVendorHandler(vendors, reviews, bookings, subjects), coupleHandler, cfg.JWTSecret, cache)
	router.RegisterCouples(e, coupleHandler, cfg.JWTSecret)
	router.RegisterBookings(e, handler.NewBookingHandler(bookings, subjects), cfg.JWTSecret)
	router.RegisterRegistry(e, handler.NewRegistryHandler(registry, couples, subjects), cfg.JWTSecret)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
