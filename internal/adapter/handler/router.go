package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-assistant/internal/infrastructure/http/middleware"
	"github.com/prepwise/interview-assistant/internal/metrics"
	"github.com/prepwise/interview-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	auth           *middleware.Auth
	roomHandler    *Room
	sessionHandler *Session
	resultHandler  *Result
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	auth *middleware.Auth,
	roomHandler *Room,
	sessionHandler *Session,
	resultHandler *Result,
) *Router {
	return &Router{
		cfg:            cfg,
		auth:           auth,
		roomHandler:    roomHandler,
		sessionHandler: sessionHandler,
		resultHandler:  resultHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Browser countdown timers fire this without a bearer token.
	e.PUT("/v1/rooms/auto-complete/:id", rt.roomHandler.AutoCompleteRoom)

	v1 := e.Group("/v1")
	v1.Use(rt.auth.Authenticate)

	rt.setupRoomRoutes(v1)
	rt.setupSessionRoutes(v1)
	rt.setupResultRoutes(v1)
}

func (rt *Router) setupRoomRoutes(g *echo.Group) {
	rooms := g.Group("/rooms")
	rooms.POST("", rt.roomHandler.CreateRoom)
	rooms.GET("", rt.roomHandler.ListRooms)
	rooms.GET("/:id", rt.roomHandler.GetRoom)
	rooms.PUT("/:id/cancel", rt.roomHandler.CancelRoom)
	rooms.PUT("/:id/complete", rt.roomHandler.CompleteRoom)
}

func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessions := g.Group("/sessions")
	sessions.POST("", rt.sessionHandler.StartSession)
	sessions.GET("/:id", rt.sessionHandler.GetSession)
	sessions.POST("/:id/answers", rt.sessionHandler.SubmitAnswer)
	sessions.PUT("/:id/next", rt.sessionHandler.NextQuestion)
	sessions.PUT("/:id/previous", rt.sessionHandler.PreviousQuestion)
	sessions.POST("/:id/finish", rt.sessionHandler.FinishSession)
}

func (rt *Router) setupResultRoutes(g *echo.Group) {
	results := g.Group("/interview-results")
	results.POST("", rt.resultHandler.SubmitResult)
	results.GET("/me", rt.resultHandler.ListMyResults)
	results.GET("/interview/:id", rt.resultHandler.GetRoomResult)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
