// Command seed resets the authors and books tables and loads sample data.
// Records are inserted one by one; a failure leaves the earlier ones in place.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-api/internal/config"
	authorRepo "library-api/internal/domains/author/repository"
	authorService "library-api/internal/domains/author/service"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"
	"library-api/internal/infrastructure/database"
	"library-api/pkg/logger"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		logger.Warn("No .env file found, using system environment variables", nil)
	}

	if err := run(); err != nil {
		logger.Error("Seed failed", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	if _, err := db.Pool.Exec(ctx, "TRUNCATE TABLE books, authors"); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	logger.Debug("Existing authors and books removed")

	authorsRepo := authorRepo.NewPostgresRepository(db.Pool, nil)
	authors := authorService.NewAuthorService(authorsRepo, nil, nil, nil, nil)
	books := bookService.NewBookService(bookRepo.NewPostgresRepository(db.Pool), authorsRepo)

	return seed(ctx, authors, books)
}

// seed inserts the sample records through the services so validation and
// password hashing apply.
func seed(ctx context.Context, authors authorService.ServiceInterface, books bookService.ServiceInterface) error {
	for i := range authorList {
		a, err := authors.Create(ctx, &authorList[i])
		if err != nil {
			return fmt.Errorf("create author %q: %w", authorList[i].Name, err)
		}
		log.Debug().Str("author_id", a.ID).Str("name", a.Name).Msg("Author seeded")
	}
	logger.Info("Authors created", map[string]interface{}{"count": len(authorList)})

	for _, b := range bookList {
		if _, err := books.Create(ctx, b.request()); err != nil {
			return fmt.Errorf("create book %q: %w", b.Title, err)
		}
	}
	logger.Info("Books created", map[string]interface{}{"count": len(bookList)})

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
