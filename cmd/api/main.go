package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "dealflow-backend/internal/adapter/http"
	"dealflow-backend/internal/adapter/middleware"
	"dealflow-backend/internal/adapter/repository/mysql"
	"dealflow-backend/internal/config"
	"dealflow-backend/internal/infrastructure/cache"
	"dealflow-backend/internal/infrastructure/db"
	"dealflow-backend/internal/usecase/acquisition"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	props := mysql.NewPropertyRepository(gdb)
	insps := mysql.NewInspectionRepository(gdb)
	contracts := mysql.NewContractRepository(gdb)
	transitions := mysql.NewAuditRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	uc := acquisition.NewUsecase(props, insps, contracts, transitions, tx, cfg.SaveRetries)

	h := httpadp.NewHandler()
	ph := httpadp.NewPropertyHandler(uc)
	dh := httpadp.NewDealHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.GET("/repair-categories", ph.RepairCategories)

	e.POST("/properties", ph.CreateProperty, idemp)
	e.GET("/properties/:property_id", ph.GetProperty)
	e.GET("/properties", ph.ListProperties)
	e.GET("/properties/:property_id/inspections", ph.ListInspections)
	e.GET("/properties/:property_id/contract", ph.GetContract)
	e.GET("/properties/:property_id/history", ph.GetHistory)

	e.POST("/properties/:property_id/documents/confirm", dh.ConfirmDocuments, idemp)
	e.POST("/properties/:property_id/prices", dh.SubmitPrices, idemp)
	e.POST("/properties/:property_id/inspection", dh.SubmitInspection, idemp)
	e.POST("/properties/:property_id/arv", dh.SubmitArv, idemp)
	e.POST("/properties/:property_id/review/override", dh.OverrideReview, idemp)
	e.POST("/properties/:property_id/reject", dh.Reject, idemp)
	e.POST("/properties/:property_id/contract", dh.GenerateContract, idemp)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
