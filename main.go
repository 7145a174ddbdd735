package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"scribe/server/seedwork/application/middleware"
	"scribe/server/seedwork/infrastructure/config"
	"scribe/server/seedwork/infrastructure/container"
	"scribe/server/seedwork/infrastructure/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Initialize(cfg.Database.Path); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := database.RunMigrations("migrations"); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.InstallLifetimeGuard(); err != nil {
		log.Fatalf("failed to install lifetime guard: %v", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to wire container: %v", err)
	}

	router := gin.New()
	router.Use(middleware.Logger(), middleware.CORS(), middleware.ErrorHandler())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticated := router.Group("/api", c.AuthMiddleware.RequireSession())
	for _, route := range c.Routes {
		route.Setup(authenticated)
	}

	if err := c.Scheduler.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("shutdown signal received, draining in-flight work...")

	c.Scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := database.Close(); err != nil {
		log.Printf("database close error: %v", err)
	}

	log.Println("shutdown complete")
}
