package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/auth"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/config"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/db"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/excel"
	httphandler "github.com/akilaManu-MaHiTo/eco-waste-server/internal/http"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/logger"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/pdf"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/repository"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	roleRepo := repository.NewRoleRepository(database)
	binRepo := repository.NewBinRepository(database)
	depositRepo := repository.NewDepositRepository(database)
	truckRepo := repository.NewTruckRepository(database)
	routeRepo := repository.NewRouteRepository(database)
	requestRepo := repository.NewRequestRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	reportRepo := repository.NewReportRepository(database)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	authService := service.NewAuthService(userRepo, roleRepo, tokenParser)
	roleService := service.NewRoleService(roleRepo)
	binService := service.NewBinService(binRepo, rng)
	depositService := service.NewDepositService(depositRepo, binRepo)
	truckService := service.NewTruckService(truckRepo, routeRepo, depositRepo)
	routeService := service.NewRouteService(routeRepo, truckRepo)
	paymentService := service.NewPaymentService(paymentRepo, requestRepo, depositRepo, binRepo, cfg)
	reportService := service.NewReportService(reportRepo, userRepo, cfg)

	handler := httphandler.NewHandler(
		authService,
		roleService,
		binService,
		depositService,
		truckService,
		routeService,
		paymentService,
		reportService,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		log,
	)

	authMiddleware := middleware.Auth(tokenParser)
	requestLogger := middleware.RequestLogger(log)
	router := httphandler.NewRouter(handler, authMiddleware, requestLogger, cfg.Environment, cfg.HTTP.CORSOrigin)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting eco-waste server")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
