package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/ecoinsight/internal/catalog"
	"anoa.com/ecoinsight/internal/config"
	"anoa.com/ecoinsight/internal/middleware"
	"anoa.com/ecoinsight/pkg/classifier"
	"anoa.com/ecoinsight/pkg/ratelimiter"
	"anoa.com/ecoinsight/pkg/storage"

	achievementHttp "anoa.com/ecoinsight/internal/modules/achievement/delivery/http"
	achievementService "anoa.com/ecoinsight/internal/modules/achievement/service"

	ledgerService "anoa.com/ecoinsight/internal/modules/ledger/service"

	profileHttp "anoa.com/ecoinsight/internal/modules/profile/delivery/http"
	profileService "anoa.com/ecoinsight/internal/modules/profile/service"

	rewardHttp "anoa.com/ecoinsight/internal/modules/reward/delivery/http"
	rewardService "anoa.com/ecoinsight/internal/modules/reward/service"

	searchService "anoa.com/ecoinsight/internal/modules/search/service"

	userHttp "anoa.com/ecoinsight/internal/modules/user/delivery/http"
	userRepo "anoa.com/ecoinsight/internal/modules/user/repository"
	userService "anoa.com/ecoinsight/internal/modules/user/service"

	wasteHttp "anoa.com/ecoinsight/internal/modules/waste/delivery/http"
	wasteRepo "anoa.com/ecoinsight/internal/modules/waste/repository"
	wasteService "anoa.com/ecoinsight/internal/modules/waste/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

// Stores are the repositories selected by STORE_DRIVER.
type Stores struct {
	Users  userRepo.UserRepository
	Wastes wasteRepo.WasteRepository
}

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

type handlers struct {
	auth        *userHttp.AuthHandler
	waste       *wasteHttp.WasteHandler
	profile     *profileHttp.ProfileHandler
	achievement *achievementHttp.AchievementHandler
	reward      *rewardHttp.RewardHandler
	health      gin.HandlerFunc
}

func NewServer(ctx context.Context, cfg *config.Config, stores Stores, redisClient *redis.Client) (*Server, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	imageStorage, err := storage.New(ctx, storage.Options{
		Driver:            cfg.StorageDriver,
		CloudinaryFolder:  cfg.CloudinaryUploadFolder,
		S3Bucket:          cfg.S3Bucket,
		S3Region:          cfg.S3Region,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.StorageDriver, err)
	}

	// Search is optional
	var searchSvc searchService.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = searchService.NewMeiliSearchService(meiliClient)
	} else {
		log.Println("⚠️ MEILISEARCH_HOST not set, waste search disabled")
	}

	if redisClient == nil {
		log.Println("⚠️ REDIS_URL not set, classify rate limiting disabled")
	}
	limiter := ratelimiter.NewRedisLimiter(redisClient, cfg.RateLimitClassify)

	evaluator, err := achievementService.NewEvaluator(cat.Achievements)
	if err != nil {
		return nil, err
	}

	ledgerSvc := ledgerService.NewLedgerService(stores.Users)
	achievementSvc := achievementService.NewAchievementService(stores.Users, stores.Wastes, evaluator)
	rewardSvc := rewardService.NewRewardService(ledgerSvc, cat)
	authSvc := userService.NewAuthService(stores.Users, cfg.JWTSecret, cfg.JWTTTL)
	profileSvc := profileService.NewProfileService(stores.Users, stores.Wastes)
	wasteSvc := wasteService.NewWasteService(
		stores.Wastes,
		classifier.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout),
		imageStorage,
		ledgerSvc,
		achievementSvc,
		searchSvc,
		limiter,
		cfg.PointsPerClassification,
	)

	h := handlers{
		auth:        userHttp.NewAuthHandler(authSvc),
		waste:       wasteHttp.NewWasteHandler(wasteSvc, cfg.MaxUploadBytes),
		profile:     profileHttp.NewProfileHandler(profileSvc),
		achievement: achievementHttp.NewAchievementHandler(achievementSvc),
		reward:      rewardHttp.NewRewardHandler(rewardSvc),
		health:      healthHandler(stores.Users),
	}

	return &Server{
		engine: newRouter(cfg, middleware.NewAuthMiddleware(cfg.JWTSecret), h),
		cfg:    cfg,
	}, nil
}

func newRouter(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h handlers) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
	}))
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	api := router.Group("/api")

	// Public routes (no auth required)
	api.GET("/health", h.health)
	api.GET("/rewards", h.reward.ListRewards)
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.auth.Register)
		auth.POST("/login", h.auth.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Waste routes
		protected.POST("/classify", h.waste.Classify)
		protected.GET("/waste/history", h.waste.History)
		protected.GET("/waste/search", h.waste.Search)

		// User routes
		protected.GET("/user/points", h.profile.GetPoints)
		protected.GET("/user/profile", h.profile.GetProfile)
		protected.GET("/user/achievements", h.achievement.GetMyAchievements)
		protected.POST("/user/redeem", h.reward.Redeem)
	}

	return router
}

// healthHandler reports whether the account store is reachable.
func healthHandler(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := users.Ping(ctx); err != nil {
			log.Printf("❌ health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	}
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
