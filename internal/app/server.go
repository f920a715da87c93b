// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"mediahub-service/internal/config"
	"mediahub-service/internal/db"
	authHandler "mediahub-service/internal/handlers/auth"
	mediaHandler "mediahub-service/internal/handlers/media"
	"mediahub-service/internal/identity/google"
	"mediahub-service/internal/middleware"
	"mediahub-service/internal/pkg/session"
	"mediahub-service/internal/repository/mongodb"
	authUsecase "mediahub-service/internal/service/auth"
	mediaUsecase "mediahub-service/internal/service/media"
	"mediahub-service/internal/storage/factory"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpServer  *http.Server
	mongoClient *mongo.Client
	redisClient *redis.Client
}

func NewServer() *Server {
	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	var logger *zap.Logger
	var err error
	if s.cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- MongoDB -----
	mongoClient, err := db.ConnectMongo(ctx, s.cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	s.mongoClient = mongoClient
	database := mongoClient.Database(s.cfg.MongoDB)

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redisClient = redisClient

	// ----- Blob store -----
	blobStore, err := factory.NewBlobStore(&s.cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to init blob store: %w", err)
	}

	// ----- Identity provider -----
	googleProvider, err := google.New(
		ctx,
		s.cfg.Google.ClientID,
		s.cfg.Google.ClientSecret,
		s.cfg.Google.RedirectURL,
	)
	if err != nil {
		return fmt.Errorf("failed to init google provider: %w", err)
	}

	// ----- Repositories & session store -----
	userRepo := mongodb.NewUserRepository(database.Collection("users"))
	mediaRepo := mongodb.NewMediaRepository(database.Collection("media"))
	sessionStore := session.NewRedisStore(redisClient)
	cookieCodec := session.NewCookieCodec(s.cfg.SessionSecret, s.cfg.IsProduction())

	// ----- Services -----
	authService := authUsecase.NewAuthService(googleProvider, userRepo, sessionStore, s.cfg.SessionTTL, logger)
	mediaService := mediaUsecase.NewMediaService(mediaRepo, blobStore, logger)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, cookieCodec, s.cfg.ClientURL, logger)
	mediaHandlerInst := mediaHandler.NewMediaHandler(mediaService, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(sessionStore, cookieCodec)
	rateLimiter := middleware.NewRateLimiter(redisClient, s.cfg.RateLimitMax, s.cfg.RateLimitWindow)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger, s.cfg.IsProduction()),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.ClientURL),
		rateLimiter.Middleware(),
	)

	// ----- Router -----
	SetupRouter(s.engine, &Handlers{
		AuthHandler:    authHandlerInst,
		MediaHandler:   mediaHandlerInst,
		AuthMiddleware: authMiddleware,
	})

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("server running on %s", s.cfg.HTTPAddr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server and releases store connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.mongoClient != nil {
		if err := s.mongoClient.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
