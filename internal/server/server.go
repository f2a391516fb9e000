package server

import (
	"context"
	"moviemart-checkout/internal/config"
	"moviemart-checkout/internal/handler"
	appmiddleware "moviemart-checkout/internal/middleware"
	"moviemart-checkout/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	echo            *echo.Echo
	cfg             *config.Config
	checkoutHandler *handler.CheckoutHandler
	sessionHandler  *handler.SessionHandler
}

func NewServer(cfg *config.Config, checkoutService service.CheckoutService, sessionService service.SessionService, log *logrus.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	cors := middleware.CORSConfig{
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			appmiddleware.SessionHeader,
		},
		ExposeHeaders: []string{appmiddleware.SessionHeader},
	}
	if len(cfg.HTTP.AllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.AllowOrigins
		cors.AllowCredentials = true
	}
	e.Use(middleware.CORSWithConfig(cors))
	e.Use(appmiddleware.AuthMiddleware())
	e.Use(appmiddleware.SessionMiddleware(cfg.Session.TTL, cfg.Environment.Name == "production"))

	e.Static("/assets", cfg.Assets.Dir)

	s := &Server{
		echo:            e,
		cfg:             cfg,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService, sessionService, log),
		sessionHandler:  handler.NewSessionHandler(sessionService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.GET("/items/:kind/:id", s.checkoutHandler.GetItem)

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.POST("/quote", s.checkoutHandler.Quote)
	checkout.POST("/flows", s.checkoutHandler.StartFlow)
	checkout.GET("/flows/:id", s.checkoutHandler.GetFlow)
	checkout.PATCH("/flows/:id", s.checkoutHandler.UpdateDraft)
	checkout.POST("/flows/:id/pay", s.checkoutHandler.Pay)
	checkout.POST("/flows/:id/gateway-result", s.checkoutHandler.GatewayResult)
	checkout.POST("/flows/:id/verify", s.checkoutHandler.Verify)
	checkout.POST("/flows/:id/reset", s.checkoutHandler.Reset)
	checkout.GET("/flows/:id/result", s.checkoutHandler.Result)

	// -------- gateway redirects --------
	checkout.GET("/ccavenue/:id", s.checkoutHandler.CCAvenueRedirect)
	checkout.GET("/success", s.checkoutHandler.HandleSuccess)
	checkout.GET("/resume", s.checkoutHandler.Resume)

	// -------- resumable session --------
	session := api.Group("/session")
	session.DELETE("", s.sessionHandler.ClearSession)
	session.GET("/profile", s.sessionHandler.GetProfile)
	session.PUT("/profile", s.sessionHandler.PutProfile)
	session.DELETE("/profile", s.sessionHandler.DeleteProfile)
	session.GET("/bookmarks", s.sessionHandler.GetBookmarks)
	session.DELETE("/bookmarks", s.sessionHandler.ClearBookmarks)
	session.POST("/bookmarks/:kind/:id", s.sessionHandler.AddBookmark)
	session.DELETE("/bookmarks/:kind/:id", s.sessionHandler.RemoveBookmark)
	session.GET("/country", s.sessionHandler.GetCountry)
	session.PUT("/country", s.sessionHandler.PutCountry)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
