package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rallypoint/rallypoint-api/internal/config"
	"github.com/rallypoint/rallypoint-api/internal/database"
	"github.com/rallypoint/rallypoint-api/internal/handlers"
	"github.com/rallypoint/rallypoint-api/internal/logger"
	"github.com/rallypoint/rallypoint-api/internal/mail"
	"github.com/rallypoint/rallypoint-api/internal/middleware"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"github.com/rallypoint/rallypoint-api/internal/services"
	"github.com/rallypoint/rallypoint-api/internal/token"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger().Fatal("failed to load configuration", zap.Error(err))
	}

	if err := logger.Init(cfg.Server.LogLevel); err != nil {
		logger.Logger().Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	log := logger.WithModule("server")

	gin.SetMode(cfg.Server.Mode)

	if err := database.Connect(&cfg.Database); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	issuer, err := token.NewIssuer(token.IssuerConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		log.Fatal("failed to build token issuer", zap.Error(err))
	}

	var mailer mail.Mailer
	if cfg.SMTP.Enabled {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Warn("smtp disabled, transactional email will not be delivered")
	}
	notifier := mail.NewNotifier(mailer, cfg.FrontendURL)

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	hourLogRepo := repository.NewHourLogRepository(db)

	authService := services.NewAuthService(userRepo, issuer, notifier)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo)
	hourLogService := services.NewHourLogService(hourLogRepo, eventRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, registrationService, issuer)
	eventHandler := handlers.NewEventHandler(eventService, registrationService)
	hourLogHandler := handlers.NewHourLogHandler(hourLogService)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgotpassword", authHandler.ForgotPassword)
		auth.PUT("/resetpassword/:token", authHandler.ResetPassword)
	}

	users := api.Group("/users", middleware.RequireAuth(issuer))
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.GET("/my-events", userHandler.MyEvents)
		users.GET("/my-waitlist", userHandler.MyWaitlist)

		admin := users.Group("", middleware.RequireAdmin())
		{
			admin.GET("", userHandler.ListUsers)
			admin.PUT("/:id/status", userHandler.UpdateUserStatus)
			admin.PUT("/:id", userHandler.UpdateUser)
			admin.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	events := api.Group("/events")
	{
		events.GET("", eventHandler.ListEvents)
		events.GET("/:id", eventHandler.GetEvent)

		authed := events.Group("", middleware.RequireAuth(issuer))
		{
			authed.POST("/:id/register", eventHandler.Join)
			authed.DELETE("/:id/unregister", eventHandler.Unregister)
			authed.POST("/:id/waitlist", eventHandler.JoinWaitlist)

			admin := authed.Group("", middleware.RequireAdmin())
			{
				admin.POST("", eventHandler.CreateEvent)
				admin.PUT("/:id", eventHandler.UpdateEvent)
				admin.DELETE("/:id", eventHandler.DeleteEvent)
			}
		}
	}

	hours := api.Group("/hours", middleware.RequireAuth(issuer))
	{
		hours.POST("", hourLogHandler.LogHours)
		hours.GET("/my", hourLogHandler.MyHours)

		admin := hours.Group("", middleware.RequireAdmin())
		{
			admin.GET("", hourLogHandler.ListHours)
			admin.PUT("/:id/status", hourLogHandler.UpdateHourStatus)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
