package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/canchapp/canchapp-backend/internal/api"
	"github.com/canchapp/canchapp-backend/internal/auth"
	"github.com/canchapp/canchapp-backend/internal/config"
	"github.com/canchapp/canchapp-backend/internal/court"
	"github.com/canchapp/canchapp-backend/internal/mailer"
	"github.com/canchapp/canchapp-backend/internal/pkg/storage"
	"github.com/canchapp/canchapp-backend/internal/reservation"
	"github.com/canchapp/canchapp-backend/internal/schedule"
	"github.com/canchapp/canchapp-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer wires every module together from config and an open pool.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	clock, err := schedule.NewClock(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	var notifier mailer.Notifier = mailer.Noop{}
	if cfg.SMTPEnabled() {
		notifier = mailer.NewSMTPNotifier(mailer.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	}

	// User module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Court module
	courtRepo := court.NewPgxRepository(pool)
	courtService := court.NewService(courtRepo)

	// Reservation module
	reservationRepo := reservation.NewPgxRepository(pool)
	reservationService := reservation.NewService(reservationRepo, courtService, userService, clock, notifier)

	router := api.NewRouter(userService, courtService, reservationService, fileStorage, jwtManager, cfg.AllowOrigins)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
