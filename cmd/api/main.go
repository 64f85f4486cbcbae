package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/vaughan-dsouza/postboard/internal/auth"
	"github.com/vaughan-dsouza/postboard/internal/db"
	"github.com/vaughan-dsouza/postboard/internal/handlers"
	"github.com/vaughan-dsouza/postboard/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	port := getenv("PORT", "4000")

	// Fail fast: without the signing secret or a database there is no
	// point starting.
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// The pool is lazy: it connects on the first request that needs it,
	// and concurrent first requests share a single attempt.
	lazy := db.NewLazy(databaseURL)
	defer lazy.Close()

	h := handlers.NewHandler(lazy, []byte(secret))
	resolver := auth.NewResolver(store.NewUsers(lazy), []byte(secret))

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handlers.Routes(h, resolver),
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
