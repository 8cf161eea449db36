package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/canchapp/canchapp-backend/internal/auth"
	"github.com/canchapp/canchapp-backend/internal/court"
	courtHttp "github.com/canchapp/canchapp-backend/internal/court/http"
	"github.com/canchapp/canchapp-backend/internal/pkg/storage"
	"github.com/canchapp/canchapp-backend/internal/reservation"
	reservationHttp "github.com/canchapp/canchapp-backend/internal/reservation/http"
	"github.com/canchapp/canchapp-backend/internal/user"
)

// NewRouter assembles middleware (CORS, Logger, rate limits, Auth) and
// registers the routes of every module under /v1.
func NewRouter(
	userService user.Service,
	courtService court.Service,
	reservationService reservation.Service,
	fileStorage storage.Storage,
	jwtManager *auth.JWTManager,
	allowOrigins []string,
) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	authMiddleware := auth.AuthRequired(jwtManager)
	// Court management, front-desk verification and the staff reservation
	// views are limited to the operating roles; retiring a court is reserved
	// to admins.
	staffOnly := auth.RequireRoles(string(user.RoleStaff), string(user.RoleAdmin))
	adminOnly := auth.RequireRoles(string(user.RoleAdmin))

	// Tight buckets on the abuse-prone endpoints, a loose one everywhere else.
	apiLimit := RateLimitByIP(rate.Every(100*time.Millisecond), 100)
	loginLimit := RateLimitByIP(rate.Every(12*time.Second), 5)
	createLimit := RateLimitByIP(rate.Every(6*time.Second), 10)

	authHandler := NewAuthHandler(userService, jwtManager)
	courtHandler := courtHttp.NewHandler(courtService, fileStorage)
	reservationHandler := reservationHttp.NewHandler(reservationService)

	v1 := r.Group("/v1")
	v1.Use(apiLimit)
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", loginLimit, authHandler.Login)
		}
		v1.GET("/users/me", authMiddleware, authHandler.Me)

		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware, staffOnly, adminOnly)
		reservationHttp.RegisterAvailabilityRoutes(v1, reservationHandler)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware, staffOnly, createLimit)
	}

	return r
}
