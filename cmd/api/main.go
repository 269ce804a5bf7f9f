package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/petportal/booking-api/internal/config"
	"github.com/petportal/booking-api/internal/email"
	"github.com/petportal/booking-api/internal/handler"
	bookingHandler "github.com/petportal/booking-api/internal/handler/booking"
	wizardHandler "github.com/petportal/booking-api/internal/handler/wizard"
	"github.com/petportal/booking-api/internal/middleware"
	"github.com/petportal/booking-api/internal/repository/postgres"
	"github.com/petportal/booking-api/internal/router"
	bookingService "github.com/petportal/booking-api/internal/service/booking"
	catalogService "github.com/petportal/booking-api/internal/service/catalog"
	"github.com/petportal/booking-api/internal/wizard"
	"github.com/petportal/booking-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	clinicRepo := postgres.NewClinicRepository(base)
	serviceRepo := postgres.NewServiceRepository(base)
	shiftRepo := postgres.NewShiftRepository(base)
	petRepo := postgres.NewPetRepository(base)
	ownerRepo := postgres.NewOwnerRepository(base)
	bookingRepo := postgres.NewBookingRepository(base)

	m := metrics.NewMetrics("petportal")

	emailSvc := email.NewSMTPService(cfg.SMTP)
	catalogSvc := catalogService.NewService(clinicRepo, serviceRepo, shiftRepo, petRepo)
	bookingSvc := bookingService.NewService(bookingRepo, ownerRepo, emailSvc)

	managerCfg := wizard.DefaultManagerConfig()
	if cfg.Wizard.SessionTTLMinutes > 0 {
		managerCfg.SessionTTL = time.Duration(cfg.Wizard.SessionTTLMinutes) * time.Minute
	}
	if cfg.Wizard.CleanupIntervalMinutes > 0 {
		managerCfg.CleanupInterval = time.Duration(cfg.Wizard.CleanupIntervalMinutes) * time.Minute
	}
	if cfg.Wizard.LoadTimeoutSeconds > 0 {
		managerCfg.Session.LoadTimeout = time.Duration(cfg.Wizard.LoadTimeoutSeconds) * time.Second
	}
	if cfg.Wizard.ResetDelaySeconds > 0 {
		managerCfg.Session.ResetDelay = time.Duration(cfg.Wizard.ResetDelaySeconds) * time.Second
	}
	manager := wizard.NewManager(catalogSvc, bookingSvc, wizard.SystemClock{}, managerCfg, m)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	h := handler.NewHandler(db)
	wizardH := wizardHandler.NewHandler(manager)
	bookingH := bookingHandler.NewHandler(bookingSvc)

	r := router.NewRouter(authMiddleware, wizardH, bookingH, h, router.DefaultRouterConfig())
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
