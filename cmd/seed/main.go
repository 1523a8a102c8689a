// Command seed creates the default creator account if it does not exist yet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"mini-instagram/bootstrap"
	"mini-instagram/config"
	"mini-instagram/database"
	"mini-instagram/internal/repository"
	"mini-instagram/internal/services"
	"mini-instagram/internal/utils"
)

func main() {
	cfg := config.LoadConfig()

	name := flag.String("name", cfg.SeedCreatorName, "creator display name")
	email := flag.String("email", cfg.SeedCreatorEmail, "creator email")
	password := flag.String("password", cfg.SeedCreatorPassword, "creator password")
	flag.Parse()

	utils.InitLogger(cfg.LogLevel)
	defer utils.Logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		utils.Logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		utils.Logger.Fatal("ensure indexes failed", zap.Error(err))
	}

	// no token is issued, so no secret
	auth := services.NewAuthService(repository.NewMongoUserRepo(db), "", cfg.JWTExpiry)
	u, created, err := auth.SeedCreator(ctx, *name, *email, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed failed:", err)
		os.Exit(1)
	}

	if !created {
		fmt.Println("Creator already exists")
		fmt.Println("Email:", u.Email)
		fmt.Println("Role:", u.Role)
		return
	}
	fmt.Println("Creator seeded successfully")
	fmt.Println("Email:", u.Email)
	fmt.Println("Password:", *password)
	fmt.Println("Role:", u.Role)
}
