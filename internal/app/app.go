package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rigelk42/fast-api/internal/config"
	"github.com/rigelk42/fast-api/internal/database"
	"github.com/rigelk42/fast-api/internal/handler"
	"github.com/rigelk42/fast-api/internal/middleware"
	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/repository"
	"github.com/rigelk42/fast-api/internal/router"
	"github.com/rigelk42/fast-api/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), database.Options{
		URL:          cfg.DatabaseURL,
		MaxConns:     cfg.DBMaxConns,
		MinConns:     cfg.DBMinConns,
		ConnLifetime: cfg.DBConnLifetime,
		ConnIdleTime: cfg.DBConnIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	todoRepo := repository.NewTodoRepository(db.Pool)
	slog.Info("database ready")

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, userRepo)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	todoService := service.NewTodoService(todoRepo)

	bookStore := repository.NewBookStore()
	bookStore.Seed(defaultBooks()...)
	catalogStore := repository.NewCatalogStore()
	catalogStore.Seed(defaultCatalog()...)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Todo:    handler.NewTodoHandler(todoService),
		Admin:   handler.NewAdminHandler(todoService),
		Book:    handler.NewBookHandler(service.NewBookService(bookStore)),
		Catalog: handler.NewCatalogHandler(service.NewCatalogService(catalogStore)),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func defaultBooks() []model.Book {
	return []model.Book{
		{ID: 1, Title: "Computer Science Pro", Author: "codingwithroby", Description: "A very nice book!", Rating: 5, PublishedDate: 2012},
		{ID: 2, Title: "Be Fast With FastAPI", Author: "codingwithroby", Description: "A great book!", Rating: 5, PublishedDate: 2014},
		{ID: 3, Title: "Master Endpoints", Author: "codingwithroby", Description: "An awesome book!", Rating: 5, PublishedDate: 2017},
		{ID: 4, Title: "HP1", Author: "Author 1", Description: "Book description", Rating: 2, PublishedDate: 2022},
		{ID: 5, Title: "HP2", Author: "Author 2", Description: "Book description", Rating: 3, PublishedDate: 2024},
		{ID: 6, Title: "HP3", Author: "Author 3", Description: "Book description", Rating: 1, PublishedDate: 2024},
	}
}

func defaultCatalog() []model.CatalogBook {
	return []model.CatalogBook{
		{Title: "Title One", Author: "Author One", Category: "science"},
		{Title: "Title Two", Author: "Author Two", Category: "science"},
		{Title: "Title Three", Author: "Author Three", Category: "history"},
		{Title: "Title Four", Author: "Author Four", Category: "math"},
		{Title: "Title Five", Author: "Author Five", Category: "math"},
		{Title: "Title Six", Author: "Author Two", Category: "math"},
	}
}
