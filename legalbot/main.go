package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legalbot/legalbot/config"
	"legalbot/legalbot/controllers"
	"legalbot/legalbot/routes"
	"legalbot/legalbot/services/llm"
	"legalbot/legalbot/sources/psql"
	"legalbot/legalbot/sources/psql/dao"
	"legalbot/legalbot/sources/storage"
	"legalbot/legalbot/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.ErrorLogger.Error("config load error", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	chatDAO := dao.NewChatDAO(db.DB)
	fileDAO := dao.NewFileDAO(db.DB)
	otpDAO := dao.NewOTPDAO(db.DB)

	gemini, err := llm.NewGeminiClient(cfg)
	if err != nil {
		logging.ErrorLogger.Error("generation client error", zap.Error(err))
		os.Exit(1)
	}

	// Blob archival is optional; without MinIO the database holds everything.
	var archive *storage.ArchiveClient
	if cfg.MinIOEndpoint != "" {
		archive, err = storage.NewArchiveClient(cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio connection error", zap.Error(err))
			os.Exit(1)
		}
	}

	authCtrl := controllers.NewAuthController(userDAO, otpDAO, cfg)
	chatCtrl := controllers.NewChatController(chatDAO, fileDAO, gemini, archive)
	userCtrl := controllers.NewUserController(userDAO, chatDAO, fileDAO, archive)
	uploadCtrl := controllers.NewUploadController()
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/auth", routes.AuthRoutes(authCtrl))
	r.Mount("/chat", routes.ChatRoutes(chatCtrl, cfg))
	r.Mount("/upload", routes.UploadRoutes(uploadCtrl, cfg))
	r.Mount("/users", routes.UserRoutes(userCtrl, cfg))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
