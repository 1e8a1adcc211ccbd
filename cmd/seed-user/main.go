// Command seed-user creates the first admin account. Running it again with
// the same email leaves the existing account untouched.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/config"
	"github.com/thierryazur06/site-api/internal/domain/entity"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
	pgRepo "github.com/thierryazur06/site-api/internal/repository/postgres"
	"github.com/thierryazur06/site-api/pkg/database"
	"github.com/thierryazur06/site-api/pkg/logger"
)

func main() {
	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "password123", "initial password")
	first := flag.String("first", "Admin", "first name")
	last := flag.String("last", "User", "last name")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Printf("Failed to build logger: %v", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.MigrateDB(db, cfg.Database.Driver, cfg.Database.MigrationsPath); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	users := pgRepo.NewUserRepo(db)
	addr := strings.TrimSpace(*email)

	existing, err := users.GetByEmail(addr)
	switch {
	case err == nil:
		zlog.Info("admin already exists", zap.String("email", existing.Email), zap.Uint("user_id", existing.ID))
		return
	case !errors.Is(err, apperrors.ErrNotFound):
		zlog.Fatal("failed to look up admin", zap.Error(err))
	}

	user := &entity.User{Email: addr, FirstName: *first, LastName: *last, Password: *password}
	if err := users.Create(user); err != nil {
		zlog.Fatal("failed to create admin", zap.Error(err))
	}
	zlog.Info("admin created", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
}
