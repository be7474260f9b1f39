package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"neonpulse/admin"
	"neonpulse/auth"
	"neonpulse/blog"
	"neonpulse/cache"
	"neonpulse/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// SESSION_SECRET keys the session cookies; unset means a random
	// per-process key.
	store := storage.NewMemStorageWithSessionKey([]byte(os.Getenv("SESSION_SECRET")))

	responseCache := cache.NewStore(30 * time.Second)
	stop := make(chan struct{})
	defer close(stop)
	responseCache.StartPruning(time.Minute, stop)

	router := gin.Default()

	authModule := auth.NewAuthModule(store)
	authModule.Setup(router)

	blogModule := blog.NewBlogModule(store, responseCache)
	blogModule.RegisterRoutes(router)

	adminModule := admin.NewAdminModule(store, responseCache)
	adminModule.RegisterRoutes(router, authModule)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
