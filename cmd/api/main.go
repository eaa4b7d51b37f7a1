package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caioolkk/semcensura-loja/internal/config"
	"github.com/caioolkk/semcensura-loja/internal/infrastructure/dynamo"
	"github.com/caioolkk/semcensura-loja/internal/infrastructure/jsonfile"
	"github.com/caioolkk/semcensura-loja/internal/infrastructure/mercadopago"
	"github.com/caioolkk/semcensura-loja/internal/infrastructure/smtp"
	transporthttp "github.com/caioolkk/semcensura-loja/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	var (
		accountRepo transporthttp.AccountRepository
		orderRepo   transporthttp.OrderRepository
	)
	switch cfg.StorageBackend {
	case "dynamo":
		client := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), client, cfg.DynamoTables)
		accountRepo = dynamo.NewAccountRepo(client, cfg.DynamoTables.Accounts)
		orderRepo = dynamo.NewOrderRepo(client, cfg.DynamoTables.Orders)
	case "file":
		var err error
		accountRepo, err = jsonfile.NewAccountRepo(filepath.Join(cfg.DataDir, cfg.AccountsFile))
		if err != nil {
			log.Fatalf("open accounts store: %v", err)
		}
		orderRepo, err = jsonfile.NewOrderRepo(filepath.Join(cfg.DataDir, cfg.OrdersFile))
		if err != nil {
			log.Fatalf("open orders store: %v", err)
		}
	default:
		log.Fatalf("unknown STORAGE_BACKEND %q (want \"file\" or \"dynamo\")", cfg.StorageBackend)
	}

	deps := &transporthttp.Deps{
		AccountRepo: accountRepo,
		OrderRepo:   orderRepo,
		Mailer:      smtp.NewMailer(cfg),
		Payments:    mercadopago.NewClient(cfg),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, storage=%s)", cfg.AppPort, cfg.AppEnv, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
