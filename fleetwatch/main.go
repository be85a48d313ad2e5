package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/routes"
	"fleetwatch/fleetwatch/services/mailer"
	"fleetwatch/fleetwatch/services/notify"
	"fleetwatch/fleetwatch/services/responder"
	"fleetwatch/fleetwatch/services/risk"
	"fleetwatch/fleetwatch/sources/psql"
	"fleetwatch/fleetwatch/sources/psql/dao"
	"fleetwatch/fleetwatch/sources/storage"
	"fleetwatch/fleetwatch/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Optional model registry: refresh the local artifact before loading.
	if cfg.MinIOEndpoint != "" {
		store, err := storage.NewModelStore(cfg)
		if err != nil {
			logging.AppLogger.Warn("model registry unavailable", zap.Error(err))
		} else if err := store.FetchModel(ctx, cfg.MinIOModelKey, cfg.RiskModelPath); err != nil {
			logging.AppLogger.Warn("model fetch failed, using local artifact", zap.Error(err))
		}
	}

	// A missing or malformed artifact is fatal: scoring has no per-request
	// fallback.
	model, err := risk.Load(cfg.RiskModelPath, cfg.RiskThreshold)
	if err != nil {
		logging.ErrorLogger.Error("risk model load error", zap.Error(err))
		os.Exit(1)
	}

	resp := responder.New()
	if cfg.ChatRulesPath != "" {
		resp, err = responder.NewFromFile(cfg.ChatRulesPath)
		if err != nil {
			logging.ErrorLogger.Error("chat rules load error", zap.Error(err))
			os.Exit(1)
		}
	}

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if cfg.SeedDev {
		if err := psql.SeedDev(ctx, db.DB); err != nil {
			logging.ErrorLogger.Error("dev seed error", zap.Error(err))
			os.Exit(1)
		}
	}

	userDAO := dao.NewUserDAO(db.DB)
	vehicleDAO := dao.NewVehicleDAO(db.DB)
	apptDAO := dao.NewAppointmentDAO(db.DB)
	chatDAO := dao.NewChatMessageDAO(db.DB)
	auditDAO := dao.NewAuditLogDAO(db.DB)

	var mail mailer.Mailer = mailer.NopMailer{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg)
	}

	authCtrl := controllers.NewAuthController(userDAO, auditDAO, cfg)
	vehicleCtrl := controllers.NewVehicleController(vehicleDAO, model)
	schedCtrl := controllers.NewScheduleController(apptDAO, vehicleDAO, auditDAO, mail)
	chatCtrl := controllers.NewChatController(chatDAO, auditDAO, vehicleCtrl, resp)
	auditCtrl := controllers.NewAuditController(auditDAO)
	healthCtrl := controllers.NewHealthController()
	notifySvc := notify.NewService(db.DB)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", healthCtrl.HealthCheck)
	r.Mount("/schedule", routes.ScheduleRoutes(schedCtrl, cfg))
	r.Mount("/chat", routes.ChatRoutes(chatCtrl, cfg))
	r.Mount("/notify", routes.NotifyRoutes(notifySvc, cfg))
	r.Mount("/audit-logs", routes.AuditRoutes(auditCtrl, cfg))
	r.Mount("/", routes.SiteRoutes(authCtrl, vehicleCtrl, schedCtrl, cfg))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("model_version", model.Version()),
			zap.Float64("risk_threshold", model.Threshold()))
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
