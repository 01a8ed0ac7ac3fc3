// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"funntour/config"
	"funntour/internal/delivery/api/middleware"
	"funntour/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const defaultMetricsPath = "/metrics"

type RouterParams struct {
	fx.In

	HealthHandler  *handler.HealthHandler
	CountryHandler *handler.CountryHandler
	StateHandler   *handler.StateHandler
	CityHandler    *handler.CityHandler
	AddressHandler *handler.AddressHandler
	ProfileHandler *handler.ProfileHandler
	UserHandler    *handler.UserHandler
	AuthHandler    *handler.AuthHandler
	EventHandler   *handler.AccountEventHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler  *handler.HealthHandler
	countryHandler *handler.CountryHandler
	stateHandler   *handler.StateHandler
	cityHandler    *handler.CityHandler
	addressHandler *handler.AddressHandler
	profileHandler *handler.ProfileHandler
	userHandler    *handler.UserHandler
	authHandler    *handler.AuthHandler
	eventHandler   *handler.AccountEventHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:  params.HealthHandler,
		countryHandler: params.CountryHandler,
		stateHandler:   params.StateHandler,
		cityHandler:    params.CityHandler,
		addressHandler: params.AddressHandler,
		profileHandler: params.ProfileHandler,
		userHandler:    params.UserHandler,
		authHandler:    params.AuthHandler,
		eventHandler:   params.EventHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Live)
	e.GET("/health/ready", r.healthHandler.Ready)

	countries := e.Group("/countries")
	{
		countries.GET("", r.countryHandler.ListCountries)
		countries.POST("", r.countryHandler.CreateCountry)
		countries.GET("/:id", r.countryHandler.GetCountry)
		countries.PUT("/:id", r.countryHandler.UpdateCountry)
		countries.DELETE("/:id", r.countryHandler.DeleteCountry)
	}

	states := e.Group("/states")
	{
		states.GET("", r.stateHandler.ListStates)
		states.POST("", r.stateHandler.CreateState)
		states.GET("/country/:countryId", r.stateHandler.ListStatesByCountry)
		states.GET("/:id", r.stateHandler.GetState)
		states.PUT("/:id", r.stateHandler.UpdateState)
		states.DELETE("/:id", r.stateHandler.DeleteState)
	}

	cities := e.Group("/cities")
	{
		cities.GET("", r.cityHandler.ListCities)
		cities.POST("", r.cityHandler.CreateCity)
		cities.GET("/state/:stateId", r.cityHandler.ListCitiesByState)
		cities.GET("/:id", r.cityHandler.GetCity)
		cities.PUT("/:id", r.cityHandler.UpdateCity)
		cities.DELETE("/:id", r.cityHandler.DeleteCity)
	}

	addresses := e.Group("/addresses")
	{
		addresses.GET("", r.addressHandler.ListAddresses)
		addresses.POST("", r.addressHandler.CreateAddress)
		addresses.GET("/:id", r.addressHandler.GetAddress)
		addresses.PUT("/:id", r.addressHandler.UpdateAddress)
		addresses.DELETE("/:id", r.addressHandler.DeleteAddress)
	}

	profiles := e.Group("/profiles")
	{
		profiles.GET("", r.profileHandler.ListProfiles)
		profiles.POST("", r.profileHandler.CreateProfile)
		profiles.GET("/:id", r.profileHandler.GetProfile)
		profiles.PUT("/:id", r.profileHandler.UpdateProfile)
		profiles.DELETE("/:id", r.profileHandler.DeleteProfile)
	}

	users := e.Group("/users")
	{
		users.GET("", r.userHandler.ListUsers)
		users.POST("", r.userHandler.CreateUser)
		users.GET("/:id", r.userHandler.GetUser)
		users.PUT("/:id", r.userHandler.UpdateUser)
		users.DELETE("/:id", r.userHandler.DeleteUser)
		users.PUT("/:id/avatar", r.userHandler.UploadAvatar)
		users.GET("/:id/events", r.eventHandler.ListUserEvents)
	}

	auth := e.Group("/auth")
	{
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/recover-password", r.authHandler.RecoverPassword)
		auth.POST("/validate-token", r.authHandler.ValidateToken)
		auth.POST("/reset-password", r.authHandler.ResetPassword)

		// Routes acting on the caller's own account need an access token.
		auth.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		auth.POST("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	path := r.config.Metrics.Path
	if path == "" {
		path = defaultMetricsPath
	}
	e.GET(path, echo.WrapHandler(promhttp.Handler()))
}
