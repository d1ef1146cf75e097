// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/middleware"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HubHandler          *handler.HubHandler
	BindingHandler      *handler.BindingHandler
	QueueHandler        *handler.QueueHandler
	ProfessionalHandler *handler.ProfessionalHandler
	HistoryHandler      *handler.HistoryHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	hubHandler          *handler.HubHandler
	bindingHandler      *handler.BindingHandler
	queueHandler        *handler.QueueHandler
	professionalHandler *handler.ProfessionalHandler
	historyHandler      *handler.HistoryHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		hubHandler:          params.HubHandler,
		bindingHandler:      params.BindingHandler,
		queueHandler:        params.QueueHandler,
		professionalHandler: params.ProfessionalHandler,
		historyHandler:      params.HistoryHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Administrative routes: authentication plus the admin role.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.POST("/hubs", r.hubHandler.CreateHub)
		adminGroup.GET("/hubs", r.hubHandler.ListHubs)
		adminGroup.GET("/hubs/:id", r.hubHandler.GetHub)
		adminGroup.PUT("/hubs/:id", r.hubHandler.UpdateHub)
		adminGroup.DELETE("/hubs/:id", r.hubHandler.DeleteHub)

		adminGroup.POST("/bindings", r.bindingHandler.Bind)
		adminGroup.DELETE("/bindings/:professionalId", r.bindingHandler.Unbind)
		adminGroup.PUT("/bindings/:professionalId", r.bindingHandler.Rebind)

		adminGroup.GET("/hubs/:id/queue", r.queueHandler.ListQueue)
		adminGroup.POST("/queue/:professionalId/dispatch", r.queueHandler.Dispatch)
		adminGroup.POST("/queue/:professionalId/dispatch-priority", r.queueHandler.DispatchPriority)
		adminGroup.POST("/queue/:professionalId/move-to-back", r.queueHandler.MoveToBack)
		adminGroup.DELETE("/queue/:professionalId", r.queueHandler.Remove)
	}

	// Professional self-service routes.
	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("/hub", r.professionalHandler.WhichHub)
		meGroup.POST("/queue/enter", r.professionalHandler.Enter)
		meGroup.DELETE("/queue", r.professionalHandler.Exit)
		meGroup.GET("/queue/position", r.professionalHandler.MyPosition)
		meGroup.GET("/notification", r.professionalHandler.DrainNotification)
		meGroup.POST("/notification/ack", r.professionalHandler.AckNotification)
	}

	// Reporting routes available to any authenticated caller.
	hubsGroup := e.Group("/hubs")
	hubsGroup.Use(r.authMiddleware.Authenticate)
	{
		hubsGroup.GET("/:id/stats", r.historyHandler.Stats)
		hubsGroup.GET("/:id/history", r.historyHandler.History)
	}
}
