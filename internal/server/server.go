package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fitness-tracker/docs"
	"fitness-tracker/internal/config"
	"fitness-tracker/internal/database"
	authhandler "fitness-tracker/internal/handler/auth"
	"fitness-tracker/internal/handler/health"
	"fitness-tracker/internal/handler/middleware"
	traininghandler "fitness-tracker/internal/handler/training"
	userhandler "fitness-tracker/internal/handler/user"
	repo "fitness-tracker/internal/repository/interfaces"
	traininguc "fitness-tracker/internal/usecase/training"
	useruc "fitness-tracker/internal/usecase/user"
	jwtsvc "fitness-tracker/pkg/jwt"
	"fitness-tracker/pkg/logger"
)

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *database.DB
	cfg        *config.Config
	log        logger.Logger

	jwtService      jwtsvc.Service
	authHandler     *authhandler.Handler
	userHandler     *userhandler.Handler
	trainingHandler *traininghandler.Handler
}

// NewServer создает новый экземпляр сервера.
// db равен nil при работе на хранилище в памяти.
func NewServer(cfg *config.Config, db *database.DB, users repo.UserRepository, trainings repo.TrainingRepository, log logger.Logger) *Server {
	// Устанавливаем режим Gin в зависимости от окружения
	switch cfg.AppEnv {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		router: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Инициализируем зависимости доменов один раз
	userService := useruc.NewService(users, log)
	trainingService := traininguc.NewService(trainings, userService, log)
	s.userHandler = userhandler.NewHandler(userService, log)
	s.trainingHandler = traininghandler.NewHandler(trainingService, log)
	if cfg.JWT.Enabled() {
		s.jwtService = jwtsvc.NewService(&cfg.JWT)
		s.authHandler = authhandler.NewHandler(&cfg.Auth, s.jwtService, log)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Request ID - первым, чтобы идентификатор попал в логи паник
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.Logger(s.log))
	if s.cfg.Metrics.Enabled {
		s.router.Use(middleware.Metrics())
	}
	s.router.Use(middleware.CORS(&s.cfg.CORS))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()
	s.setupServiceRoutes()

	v1 := s.router.Group("/api/v1")
	// GET /api/v1/ — корневой эндпоинт API v1, возвращает версию и базовую информацию.
	v1.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Fitness Tracker API v1",
			"version": docs.SwaggerInfo.Version,
		})
	})

	s.setupAuthRoutes(v1)
	s.setupUserRoutes(v1)
	s.setupTrainingRoutes(v1)
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	var pinger health.Pinger
	if s.db != nil {
		pinger = s.db
	}
	healthHandler := health.NewHandler(pinger, s.cfg.Storage.Driver, s.cfg.AppEnv)
	// GET /health — базовый health-check сервера (жив ли процесс).
	s.router.GET("/health", healthHandler.Health)
	// GET /health/db — проверка доступности базы данных.
	s.router.GET("/health/db", healthHandler.HealthDB)
}

// setupServiceRoutes подключает метрики и документацию.
func (s *Server) setupServiceRoutes() {
	if s.cfg.Metrics.Enabled {
		s.router.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if s.cfg.Swagger.Enabled {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// setupAuthRoutes настраивает выпуск операторских токенов.
func (s *Server) setupAuthRoutes(v1 *gin.RouterGroup) {
	if s.authHandler == nil {
		return
	}
	// POST /api/v1/auth/token — выпуск access-токена оператора по логину и паролю.
	v1.POST("/auth/token", s.authHandler.Token)
}

// guarded добавляет проверку токена перед обработчиком изменяющего маршрута.
// Без JWT-секрета изменяющие маршруты открыты.
func (s *Server) guarded(handler gin.HandlerFunc) []gin.HandlerFunc {
	if s.jwtService == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{
		middleware.Auth(s.jwtService, s.log),
		middleware.RequireRole(jwtsvc.RoleOperator),
		handler,
	}
}

// setupUserRoutes настраивает эндпоинты пользователей.
func (s *Server) setupUserRoutes(v1 *gin.RouterGroup) {
	h := s.userHandler
	users := v1.Group("/users")
	{
		// GET /api/v1/users — постраничный список (page, size, sort_by, ascending).
		users.GET("", h.List)
		// GET /api/v1/users/simple — сокращённый список всех пользователей.
		users.GET("/simple", h.ListSimple)
		// GET /api/v1/users/email?email= — поиск по фрагменту email.
		users.GET("/email", h.SearchByEmail)
		// GET /api/v1/users/older/:date — пользователи, родившиеся раньше даты.
		users.GET("/older/:date", h.ListOlderThan)
		users.GET("/:id", h.Get)

		users.POST("", s.guarded(h.Create)...)
		users.PUT("/:id", s.guarded(h.Update)...)
		users.DELETE("/:id", s.guarded(h.Delete)...)
	}
}

// setupTrainingRoutes настраивает эндпоинты тренировок.
func (s *Server) setupTrainingRoutes(v1 *gin.RouterGroup) {
	h := s.trainingHandler
	trainings := v1.Group("/trainings")
	{
		trainings.GET("", h.List)
		// GET /api/v1/trainings/user/:userId — тренировки пользователя.
		trainings.GET("/user/:userId", h.ListByUser)
		// GET /api/v1/trainings/finished/:afterTime — закончившиеся строго после даты.
		trainings.GET("/finished/:afterTime", h.ListFinishedAfter)
		// GET /api/v1/trainings/activity-type?activity_type= — по виду активности.
		trainings.GET("/activity-type", h.ListByActivityType)
		trainings.GET("/:id", h.Get)

		trainings.POST("", s.guarded(h.Create)...)
		trainings.PUT("/:id", s.guarded(h.Update)...)
		trainings.DELETE("/:id", s.guarded(h.Delete)...)
	}
}

// Start запускает HTTP сервер с graceful shutdown
func (s *Server) Start() error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения сигналов ОС
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)

	go func() {
		s.log.Info("HTTP сервер запущен", map[string]any{"address": address, "storage": s.cfg.Storage.Driver})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	// Ожидаем либо сигнал для graceful shutdown, либо ошибку запуска
	select {
	case err := <-serverErr:
		s.log.Error("Ошибка запуска сервера", map[string]any{"error": err.Error()})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
		return err
	case sig := <-quit:
		s.log.Info("Получен сигнал остановки сервера", map[string]any{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	s.log.Info("HTTP сервер успешно остановлен", nil)
	return nil
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
