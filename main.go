package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/ncr-housing/real_estate_backend/config"
	"github.com/ncr-housing/real_estate_backend/routes"
	"github.com/ncr-housing/real_estate_backend/storage"
)

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
}

func setupRouter(media storage.MediaStore, redisClient *redis.Client) *mux.Router {
	router := mux.NewRouter()
	routes.Routes(router, media, redisClient)
	return router
}

func main() {
	loadEnv()

	client, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer config.CloseDBConnection(client)

	config.InitCollections(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := config.EnsureIndexes(ctx); err != nil {
		log.Printf("Failed to ensure indexes: %v", err)
	}
	cancel()

	redisClient := config.InitRedis()

	media, err := storage.NewS3MediaStore(storage.Config{
		Endpoint:  os.Getenv("MEDIA_ENDPOINT"),
		Bucket:    os.Getenv("MEDIA_BUCKET"),
		AccessKey: os.Getenv("MEDIA_ACCESS_KEY"),
		SecretKey: os.Getenv("MEDIA_SECRET_KEY"),
		BaseURL:   os.Getenv("MEDIA_BASE_URL"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize the media store: %v", err)
	}

	router := setupRouter(media, redisClient)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Error during server shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
