package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/feedline/feedline-api/internal/config"
	"github.com/feedline/feedline-api/internal/domain/admin"
	"github.com/feedline/feedline-api/internal/domain/audit"
	"github.com/feedline/feedline-api/internal/domain/auth"
	"github.com/feedline/feedline-api/internal/domain/comment"
	"github.com/feedline/feedline-api/internal/domain/moderation"
	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/domain/reaction"
	"github.com/feedline/feedline-api/internal/domain/social"
	"github.com/feedline/feedline-api/internal/domain/user"
	"github.com/feedline/feedline-api/internal/middleware"
	"github.com/feedline/feedline-api/internal/pkg/database"
	img "github.com/feedline/feedline-api/internal/pkg/imaging"
	"github.com/feedline/feedline-api/internal/pkg/jwt"
	"github.com/feedline/feedline-api/internal/pkg/logger"
	"github.com/feedline/feedline-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Feedline API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	var media storage.Storage
	if cfg.HasS3() {
		media, err = storage.NewS3Storage(storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to init S3 storage")
		}
	} else {
		media, err = storage.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalStorageURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to init local storage")
		}
		log.Warn().Msg("S3 credentials not set, using local media storage")
	}

	processor := img.NewProcessor(img.DefaultConfig())

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	postRepo := post.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	socialRepo := social.NewRepository(db)
	reactionRepo := reaction.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	reportRepo := moderation.NewRepository(db)
	auditRepo := audit.NewRepository(db)

	// ---------- Services ----------
	notificationCache := notification.NewCache(redisClient)
	notificationHub := notification.NewHub(cfg.AllowedOrigins)
	notificationService := notification.NewService(notificationRepo, notificationCache, notificationHub)

	auditService := audit.NewService(auditRepo)

	authService := auth.NewService(userRepo, jwtService)
	postService := post.NewService(postRepo, userRepo, media, processor)
	commentService := comment.NewService(commentRepo, postRepo, userRepo, notificationService)
	socialService := social.NewService(socialRepo, userRepo, notificationService)
	reactionService := reaction.NewService(reactionRepo, postRepo, commentRepo, notificationService)

	executor := moderation.NewExecutor(postRepo, commentRepo, userRepo, notificationService, auditService)
	moderationService := moderation.NewService(reportRepo, postRepo, commentRepo, userRepo, notificationService, auditService, executor)
	adminService := admin.NewService(userRepo, postRepo, notificationService, auditService, executor)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	postHandler := post.NewHandler(postService)
	commentHandler := comment.NewHandler(commentService)
	socialHandler := social.NewHandler(socialService)
	reactionHandler := reaction.NewHandler(reactionService)
	notificationHandler := notification.NewHandler(notificationService)
	moderationHandler := moderation.NewHandler(moderationService)
	auditHandler := audit.NewHandler(auditService)
	adminHandler := admin.NewHandler(adminService)

	// ---------- Router ----------
	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/posts", postHandler.Routes(authMiddleware))

		r.Route("/posts/{id}/comments", func(r chi.Router) {
			r.Get("/", commentHandler.ListByPost)
			r.With(authMiddleware).Post("/", commentHandler.Create)
		})
		r.Route("/posts/{id}/like", func(r chi.Router) {
			r.With(authMiddleware).Post("/", reactionHandler.LikePost)
		})
		r.Route("/posts/{id}/dislike", func(r chi.Router) {
			r.With(authMiddleware).Post("/", reactionHandler.DislikePost)
		})
		r.Route("/comments/{id}", func(r chi.Router) {
			r.With(authMiddleware).Delete("/", commentHandler.Delete)
			r.With(authMiddleware).Post("/reaction", reactionHandler.ReactComment)
		})

		r.Mount("/users", socialHandler.Routes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))
		r.Mount("/reports", moderationHandler.Routes(authMiddleware, adminMiddleware))

		r.Mount("/admin", adminHandler.Routes(authMiddleware, adminMiddleware))
		r.Mount("/admin/audits", auditHandler.Routes(authMiddleware, adminMiddleware))

		r.With(authMiddleware).Get("/ws", notificationHub.HandleWS)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
