package invitations

import (
	"errors"
	"net/http"

	projects_services "wedsync/internal/features/projects/services"
	users_middleware "wedsync/internal/features/users/middleware"
	rate_limit "wedsync/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	acceptRPSLimit   = 2
	acceptBurstLimit = 10
)

type InvitationController struct {
	invitationService *InvitationService
	rateLimiter       *rate_limit.RateLimiter // nil disables accept throttling
}

func NewInvitationController(
	invitationService *InvitationService,
	rateLimiter *rate_limit.RateLimiter,
) *InvitationController {
	return &InvitationController{
		invitationService: invitationService,
		rateLimiter:       rateLimiter,
	}
}

func (c *InvitationController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.POST("/invitations/accept", c.AcceptInvitation)
	router.GET("/invitations/:id", c.GetProjectInvitations)
	router.POST("/invitations/:id", c.CreateInvitation)
	router.DELETE("/invitations/:id/:invitationId", c.CancelInvitation)
}

// CreateInvitation
// @Summary Invite someone to a project by email
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body CreateInvitationRequestDTO true "Invitation data"
// @Success 201 {object} Invitation
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /invitations/{id} [post]
func (c *InvitationController) CreateInvitation(ctx *gin.Context) {
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

	var request CreateInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	invitation, err := c.invitationService.CreateInvitation(projectID, &request, user)
	if err != nil {
		respondInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, invitation)
}

// GetProjectInvitations
// @Summary List a project's invitations
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} GetInvitationsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /invitations/{id} [get]
func (c *InvitationController) GetProjectInvitations(ctx *gin.Context) {
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

	response, err := c.invitationService.GetProjectInvitations(projectID, user)
	if err != nil {
		respondInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AcceptInvitation
// @Summary Redeem an invitation token
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AcceptInvitationRequestDTO true "Invitation token"
// @Success 200 {object} AcceptInvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /invitations/accept [post]
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if c.rateLimiter != nil {
		result, err := c.rateLimiter.CheckRateLimit(
			"invite_accept:"+ctx.ClientIP(), acceptRPSLimit, acceptBurstLimit)
		// Limiter failures fall open; token checks still apply.
		if err == nil && !result.Allowed {
			ctx.Header("Retry-After", "1")
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, try again later"})
			return
		}
	}

	var request AcceptInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.invitationService.AcceptInvitation(request.Token, user)
	if err != nil {
		respondInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CancelInvitation
// @Summary Cancel a pending invitation
// @Tags invitations
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param invitationId path string true "Invitation ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /invitations/{id}/{invitationId} [delete]
func (c *InvitationController) CancelInvitation(ctx *gin.Context) {
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

	invitationID, err := uuid.Parse(ctx.Param("invitationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	if err := c.invitationService.CancelInvitation(projectID, invitationID, user); err != nil {
		respondInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled successfully"})
}

func respondInvitationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidToken):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrExpired):
		ctx.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyUsed), errors.Is(err, ErrInvalidState):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, projects_services.ErrPermissionDenied),
		errors.Is(err, projects_services.ErrOwnerProtected):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, projects_services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, projects_services.ErrAlreadyExists):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
