package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whatsapp-media-gateway/internal/api"
	"whatsapp-media-gateway/internal/config"
	"whatsapp-media-gateway/internal/database"
	"whatsapp-media-gateway/internal/media"
	"whatsapp-media-gateway/internal/webhook"
	"whatsapp-media-gateway/internal/whatsapp"
	"whatsapp-media-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log, err := logger.New()
	if err != nil {
		os.Stderr.WriteString("CRITICAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.LoadConfig()
	database.InitDB(cfg)

	router, err := buildRouter(cfg, log)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	sig := <-quit
	log.Info("Shutting down gracefully", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func buildRouter(cfg *config.Config, log *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	whatsappClient := whatsapp.NewClient(cfg)
	store, err := media.NewStore(cfg.MediaDir, database.DB, log)
	if err != nil {
		return nil, err
	}
	processor := media.NewProcessor(whatsappClient, store, log)

	webhookHandler := webhook.NewHandler(cfg, processor, log)
	dashboardHandler := api.NewDashboardHandler(whatsappClient, cfg, log)
	contactHandler := api.NewContactHandler()
	mediaHandler := api.NewMediaHandler()
	systemHandler := api.NewSystemHandler(cfg)

	r.GET("/", systemHandler.Root)
	r.GET("/debug", systemHandler.Debug)

	// Webhook Routes
	r.GET("/webhook", webhookHandler.VerifyWebhook)
	r.POST("/webhook", webhookHandler.HandleMessage)

	// Dashboard API Routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/messages", dashboardHandler.GetMessages)
		apiGroup.POST("/send", dashboardHandler.SendMessage)
		apiGroup.GET("/contacts", contactHandler.GetContacts)
		apiGroup.GET("/media", mediaHandler.ListMedia)
	}

	return r, nil
}
