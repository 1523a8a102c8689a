// @title Mini Instagram API
// @version 1.0
// @description Posts, comments, likes and media uploads for the mini-instagram frontend.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"time"

	_ "mini-instagram/docs"

	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"mini-instagram/bootstrap"
	"mini-instagram/config"
	"mini-instagram/database"
	"mini-instagram/internal/repository"
	"mini-instagram/internal/routes"
	"mini-instagram/internal/services"
	"mini-instagram/internal/storage"
	"mini-instagram/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	utils.InitLogger(cfg.LogLevel)
	defer utils.Logger.Sync()

	ctx := context.Background()

	// Connect to the database
	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		utils.Logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	db := client.Database(cfg.MongoDB)

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		utils.Logger.Fatal("ensure indexes failed", zap.Error(err))
	}

	// Media storage, chosen once at boot
	backend, err := storage.NewBackend(ctx, cfg, db)
	if err != nil {
		utils.Logger.Fatal("storage init failed", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	store := storage.New(backend)
	if err := store.Warm(ctx); err != nil {
		utils.Logger.Warn("media index warm-up failed, falling back to scans", zap.Error(err))
	}

	posts := repository.NewMongoPostRepo(db)
	comments := repository.NewMongoCommentRepo(db)
	users := repository.NewMongoUserRepo(db)

	app := routes.NewApp(cfg)

	// Swagger API document
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Register(app, routes.Deps{
		Config:   cfg,
		Auth:     services.NewAuthService(users, cfg.JWTSecret, cfg.JWTExpiry),
		Users:    services.NewUserService(users),
		Posts:    services.NewPostService(posts, comments, users, store),
		Comments: services.NewCommentService(posts, comments, users),
		Likes:    services.NewLikeService(posts, comments, users),
		Store:    store,
	})

	utils.Logger.Info("server starting", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Logger.Fatal("server stopped", zap.Error(err))
	}
}
