package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	projects_services "wedsync/internal/features/projects/services"
	users_enums "wedsync/internal/features/users/enums"
	users_middleware "wedsync/internal/features/users/middleware"
	users_services "wedsync/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ConnIDHeader lets a mutating request name its own websocket connection
// so the resulting broadcast skips it.
const ConnIDHeader = "X-Conn-Id"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin access is governed by the bearer token, not Origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	hub            *Hub
	userService    *users_services.UserService
	projectService *projects_services.ProjectService
	limiter        *publishLimiter
	logger         *slog.Logger
}

func NewRealtimeController(
	hub *Hub,
	userService *users_services.UserService,
	projectService *projects_services.ProjectService,
	logger *slog.Logger,
) *RealtimeController {
	return &RealtimeController{
		hub:            hub,
		userService:    userService,
		projectService: projectService,
		limiter:        newPublishLimiter(),
		logger:         logger,
	}
}

// The websocket route authenticates itself from the token query
// parameter, browsers cannot set Authorization headers on upgrades.
func (c *RealtimeController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/realtime/:id/ws", c.HandleWebSocket)
}

func (c *RealtimeController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.POST("/projects/realtime/:id/events", c.PublishEvent)
}

// HandleWebSocket
// @Summary Subscribe to a project's live event stream
// @Tags realtime
// @Param id path string true "Project ID"
// @Param token query string true "Access token"
// @Success 101
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/realtime/{id}/ws [get]
func (c *RealtimeController) HandleWebSocket(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	user, err := c.userService.GetUserFromToken(ctx.Query("token"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if _, err := c.projectService.Authorize(user, projectID, users_enums.ProjectRoleViewer); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "insufficient role for this action"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", "projectId", projectID, "error", err)
		return
	}

	client := NewClient(conn, user.ID)
	c.hub.Join(projectID, client)

	go client.writePump()

	welcome, _ := json.Marshal(Envelope{
		Event:     "connected",
		ProjectID: projectID,
		Payload:   ConnectedPayload{ConnID: client.ConnID},
	})
	client.enqueue(welcome)

	client.readPump(func() {
		c.hub.Leave(projectID, client)
	})
}

// PublishEvent
// @Summary Broadcast an application event to a project's subscribers
// @Tags realtime
// @Accept json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param X-Conn-Id header string false "Connection to exclude from the broadcast"
// @Param request body PublishEventRequestDTO true "Event data"
// @Success 202 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /projects/realtime/{id}/events [post]
func (c *RealtimeController) PublishEvent(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	if _, err := c.projectService.Authorize(user, projectID, users_enums.ProjectRoleCollaborator); err != nil {
		if errors.Is(err, projects_services.ErrPermissionDenied) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !c.limiter.Allow(user.ID) {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many events, slow down"})
		return
	}

	var request PublishEventRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	c.hub.Publish(projectID, request.Event, request.Payload, ctx.GetHeader(ConnIDHeader))

	ctx.JSON(http.StatusAccepted, gin.H{"message": "Event broadcast accepted"})
}
