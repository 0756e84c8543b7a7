package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/identity"
	"github.com/Domenick1991/carrental/internal/service/otp"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Identity identity.IdentityUseCase
	OTP      otp.OTPUseCase
	Booking  booking.BookingUseCase
	Catalog  api.Catalog
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(deps Deps) http.Handler {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	apiGroup := router.Group("/api")
	api.NewAuthHandler(deps.Identity).Register(apiGroup.Group("/auth"))
	api.NewOTPHandler(deps.OTP).Register(apiGroup.Group("/otp"))
	api.NewCarHandler(deps.Catalog).Register(apiGroup.Group("/cars"))
	api.NewBookingHandler(deps.Booking, deps.OTP, deps.Identity).Register(apiGroup.Group("/bookings"))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
