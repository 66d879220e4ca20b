package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/ocean-hazard-api/internal/config"
	"github.com/yukikurage/ocean-hazard-api/internal/constants"
	"github.com/yukikurage/ocean-hazard-api/internal/handlers"
	"github.com/yukikurage/ocean-hazard-api/internal/middleware"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth    *services.AuthService
	Reports *services.ReportService
	Triage  *services.TriageService
	Team    *services.TeamService
	Media   *services.MediaService
	Feed    *services.FeedHub
}

// NewSessionStore builds the cookie or redis backed session store.
func NewSessionStore(cfg config.SessionConfig, secure bool) (sessions.Store, error) {
	var (
		store sessions.Store
		err   error
	)
	switch cfg.Store {
	case "redis":
		store, err = redisStore.NewStore(
			10, // pool size
			"tcp",
			cfg.RedisHost+":"+cfg.RedisPort,
			"",
			"",
			[]byte(cfg.Secret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
	case "cookie", "":
		store = cookie.NewStore([]byte(cfg.Secret))
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Store)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(svc Services, store sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	authHandler := handlers.NewAuthHandler(svc.Auth)
	reportHandler := handlers.NewHazardReportHandler(svc.Reports)
	adminHandler := handlers.NewAdminHandler(svc.Triage)
	teamHandler := handlers.NewTeamHandler(svc.Team)
	mediaHandler := handlers.NewMediaHandler(svc.Media)
	feedHandler := handlers.NewFeedHandler(svc.Feed)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Ocean Hazard API is running",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		reports := api.Group("/hazard-reports")
		{
			reports.POST("", reportHandler.CreateHazardReport)
			reports.GET("", reportHandler.ListHazardReports)
			reports.GET("/nearby", reportHandler.NearbyHazardReports)
			reports.GET("/user/:userId", reportHandler.ListUserHazardReports)
			reports.GET("/:id", reportHandler.GetHazardReport)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/reports", adminHandler.ListReports)
			admin.GET("/reports/:id", adminHandler.GetReport)
			admin.PUT("/reports/:id/status", adminHandler.UpdateStatus)
			admin.POST("/reports/:id/assign", adminHandler.AssignReport)
			admin.PUT("/reports/:id/priority", adminHandler.UpdatePriority)
			admin.POST("/reports/:id/notes", adminHandler.UpdateNotes)
			admin.GET("/statistics", adminHandler.Statistics)

			admin.GET("/team", teamHandler.ListMembers)
			admin.POST("/team", teamHandler.CreateMember)
			admin.PUT("/team/:id/status", teamHandler.UpdateMemberStatus)
		}

		api.POST("/media/upload-url", mediaHandler.CreateUploadURL)
		api.GET("/ws/feed", feedHandler.Subscribe)
	}

	return r
}
