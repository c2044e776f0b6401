package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MasaoAsano/roomRSV/api/swagger"
	"github.com/MasaoAsano/roomRSV/internal/handler"
	"github.com/MasaoAsano/roomRSV/internal/middleware"
	"github.com/MasaoAsano/roomRSV/internal/repository"
	"github.com/MasaoAsano/roomRSV/internal/service"
	"github.com/MasaoAsano/roomRSV/pkg/cache"
	"github.com/MasaoAsano/roomRSV/pkg/config"
	"github.com/MasaoAsano/roomRSV/pkg/database"
	"github.com/MasaoAsano/roomRSV/pkg/logger"
	corsmiddleware "github.com/MasaoAsano/roomRSV/pkg/middleware/cors"
	reqidmiddleware "github.com/MasaoAsano/roomRSV/pkg/middleware/requestid"
)

// @title Meeting Room Booking API
// @version 1.0.0
// @description Room search, recommendation, booking and weekly calendar API
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.CalendarTTL, logr, true)
			defer cacheRepo.Close()
		}
	}

	validate := validator.New()
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	roomSvc := service.NewRoomService(roomRepo, bookingRepo, cacheSvc, validate, logr)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, cacheSvc, metricsSvc, validate, logr)
	calendarSvc := service.NewCalendarService(roomRepo, bookingRepo, cacheSvc, cfg.Calendar.DayStartHour, cfg.Calendar.DayEndHour, logr)

	roomHandler := handler.NewRoomHandler(roomSvc, bookingSvc, calendarSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", metricsHandler.Health)

	api.GET("/rooms", roomHandler.List)
	api.POST("/rooms/recommend", roomHandler.Recommend)
	api.GET("/rooms/:id", roomHandler.Get)
	api.GET("/rooms/:id/bookings", roomHandler.ListBookings)
	api.GET("/rooms/:id/calendar", roomHandler.Calendar)
	api.GET("/rooms/:id/calendar/export", roomHandler.ExportCalendar)

	api.POST("/bookings", bookingHandler.Create)
	api.GET("/bookings", bookingHandler.List)
	api.GET("/bookings/:id", bookingHandler.Get)
	api.DELETE("/bookings/:id", bookingHandler.Delete)

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
