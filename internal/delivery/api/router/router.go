// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ministry/config"
	"ministry/internal/delivery/api/middleware"
	"ministry/internal/delivery/api/router/handler"
	"ministry/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MinistryHandler   *handler.MinistryHandler
	AuthHandler       *handler.AuthHandler
	SermonHandler     *handler.SermonHandler
	EventHandler      *handler.EventHandler
	PrayerHandler     *handler.PrayerHandler
	VolunteerHandler  *handler.VolunteerHandler
	DonationHandler   *handler.DonationHandler
	BlogHandler       *handler.BlogHandler
	ResourceHandler   *handler.ResourceHandler
	LiveStreamHandler *handler.LiveStreamHandler
	AdminHandler      *handler.AdminHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	ministryHandler   *handler.MinistryHandler
	authHandler       *handler.AuthHandler
	sermonHandler     *handler.SermonHandler
	eventHandler      *handler.EventHandler
	prayerHandler     *handler.PrayerHandler
	volunteerHandler  *handler.VolunteerHandler
	donationHandler   *handler.DonationHandler
	blogHandler       *handler.BlogHandler
	resourceHandler   *handler.ResourceHandler
	liveStreamHandler *handler.LiveStreamHandler
	adminHandler      *handler.AdminHandler
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		ministryHandler:   params.MinistryHandler,
		authHandler:       params.AuthHandler,
		sermonHandler:     params.SermonHandler,
		eventHandler:      params.EventHandler,
		prayerHandler:     params.PrayerHandler,
		volunteerHandler:  params.VolunteerHandler,
		donationHandler:   params.DonationHandler,
		blogHandler:       params.BlogHandler,
		resourceHandler:   params.ResourceHandler,
		liveStreamHandler: params.LiveStreamHandler,
		adminHandler:      params.AdminHandler,
		authMiddleware:    params.AuthMiddleware,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes under the configured prefix.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group(r.config.HTTP.APIPrefix)

	authenticated := r.authMiddleware.Authenticate
	management := r.authMiddleware.RequireRoles(entity.ManagementRoles...)

	// Service
	api.GET("", r.ministryHandler.Banner)
	api.GET("/", r.ministryHandler.Banner)
	api.GET("/health", r.ministryHandler.Health)
	api.GET("/ministry/info", r.ministryHandler.Info)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout, authenticated)
		authGroup.GET("/me", r.authHandler.Me, authenticated)
	}

	sermons := api.Group("/sermons")
	{
		sermons.GET("", r.sermonHandler.List)
		sermons.GET("/:id", r.sermonHandler.Get)
		sermons.POST("/:id/download", r.sermonHandler.Download)
		sermons.POST("", r.sermonHandler.Create, authenticated, management)
		sermons.PATCH("/:id", r.sermonHandler.Update, authenticated, management)
	}

	events := api.Group("/events")
	{
		events.GET("", r.eventHandler.List)
		events.GET("/:id", r.eventHandler.Get)
		events.GET("/:id/qrcode", r.eventHandler.QRCode)
		events.POST("/:id/rsvp", r.eventHandler.RSVP)
		events.POST("", r.eventHandler.Create, authenticated, management)
		events.PATCH("/:id", r.eventHandler.Update, authenticated, management)
		events.GET("/:id/rsvps", r.eventHandler.ListRSVPs, authenticated, management)
	}

	prayers := api.Group("/prayers")
	{
		prayers.POST("", r.prayerHandler.Submit)
		prayers.GET("/public", r.prayerHandler.ListPublic)
		prayers.GET("", r.prayerHandler.List, authenticated, management)
		prayers.PATCH("/:id", r.prayerHandler.Update, authenticated, management)
	}

	volunteers := api.Group("/volunteers")
	{
		volunteers.POST("", r.volunteerHandler.Apply)
		volunteers.GET("", r.volunteerHandler.List, authenticated, management)
		volunteers.PATCH("/:id", r.volunteerHandler.UpdateStatus, authenticated, management)
	}

	donations := api.Group("/donations")
	{
		donations.POST("/checkout", r.donationHandler.CreateCheckout)
		donations.GET("/status/:session_id", r.donationHandler.GetStatus)
		donations.GET("", r.donationHandler.List, authenticated, management)
	}
	api.POST("/webhook/stripe", r.donationHandler.Webhook)

	blog := api.Group("/blog")
	{
		blog.GET("", r.blogHandler.List)
		blog.GET("/:slug", r.blogHandler.GetBySlug)
		blog.POST("", r.blogHandler.Create, authenticated, management)
		blog.PATCH("/:id", r.blogHandler.Update, authenticated, management)
	}

	resources := api.Group("/resources")
	{
		resources.GET("", r.resourceHandler.List)
		resources.GET("/:id", r.resourceHandler.Get)
		resources.POST("/:id/download", r.resourceHandler.Download)
		resources.POST("", r.resourceHandler.Create, authenticated, management)
		resources.POST("/upload", r.resourceHandler.Upload, authenticated, management)
	}

	livestream := api.Group("/livestream")
	{
		livestream.GET("", r.liveStreamHandler.List)
		livestream.GET("/:id", r.liveStreamHandler.Get)
		livestream.GET("/:id/chat", r.liveStreamHandler.ListChat)
		livestream.POST("/:id/chat", r.liveStreamHandler.PostChat)
		livestream.POST("", r.liveStreamHandler.Create, authenticated, management)
		livestream.PATCH("/:id/status", r.liveStreamHandler.UpdateStatus, authenticated, management)
	}

	admin := api.Group("/admin", authenticated, management)
	{
		admin.GET("/dashboard", r.adminHandler.Dashboard)
	}
}
