package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/ecoinsight/internal/bootstrap"
	"anoa.com/ecoinsight/internal/config"
	userRepo "anoa.com/ecoinsight/internal/modules/user/repository"
	wasteRepo "anoa.com/ecoinsight/internal/modules/waste/repository"
	"anoa.com/ecoinsight/internal/server"
	"anoa.com/ecoinsight/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET is not set, auth requests will fail")
	}

	ctx := context.Background()

	stores, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedDemoUser(ctx, stores.Users); err != nil {
			log.Fatalf("failed to seed demo user: %v", err)
		}
	}

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv, err := server.NewServer(ctx, cfg, stores, redisClient)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("🌱 EcoInsight listening on %s (%s store)", cfg.Port, cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server exited with error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

func openStores(ctx context.Context, cfg *config.Config) (server.Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		mdb, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return server.Stores{}, err
		}
		if err := bootstrap.MigrateMongo(ctx, mdb); err != nil {
			return server.Stores{}, err
		}
		return server.Stores{
			Users:  userRepo.NewMongoUserRepository(mdb),
			Wastes: wasteRepo.NewMongoWasteRepository(mdb),
		}, nil

	default:
		db, err := database.Connect(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			return server.Stores{}, err
		}
		if err := bootstrap.Migrate(db); err != nil {
			return server.Stores{}, err
		}
		return server.Stores{
			Users:  userRepo.NewUserRepository(db),
			Wastes: wasteRepo.NewWasteRepository(db),
		}, nil
	}
}
