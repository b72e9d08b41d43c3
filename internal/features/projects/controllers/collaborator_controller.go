package projects_controllers

import (
	"net/http"

	projects_dto "wedsync/internal/features/projects/dto"
	projects_services "wedsync/internal/features/projects/services"
	users_middleware "wedsync/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollaboratorController struct {
	collaboratorService *projects_services.CollaboratorService
}

func NewCollaboratorController(collaboratorService *projects_services.CollaboratorService) *CollaboratorController {
	return &CollaboratorController{collaboratorService: collaboratorService}
}

func (c *CollaboratorController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.GET("/projects/collaborators/:id", c.GetCollaborators)
	router.POST("/projects/collaborators/:id", c.AddCollaborator)
	router.PUT("/projects/collaborators/:id/:bindingId", c.ChangeCollaboratorRole)
	router.DELETE("/projects/collaborators/:id/:bindingId", c.RemoveCollaborator)
}

// GetCollaborators
// @Summary List a project's collaborators
// @Tags collaborators
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ListCollaboratorsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /projects/collaborators/{id} [get]
func (c *CollaboratorController) GetCollaborators(ctx *gin.Context) {
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

	response, err := c.collaboratorService.GetCollaborators(projectID, user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddCollaborator
// @Summary Add a collaborator to a project by email
// @Tags collaborators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AddCollaboratorRequestDTO true "Collaborator data"
// @Success 201 {object} projects_dto.CollaboratorResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/collaborators/{id} [post]
func (c *CollaboratorController) AddCollaborator(ctx *gin.Context) {
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

	var request projects_dto.AddCollaboratorRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.collaboratorService.AddCollaborator(projectID, &request, user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ChangeCollaboratorRole
// @Summary Change a collaborator's role
// @Tags collaborators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param bindingId path string true "Binding ID"
// @Param request body projects_dto.ChangeCollaboratorRoleRequestDTO true "New role"
// @Success 200 {object} projects_dto.CollaboratorResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/collaborators/{id}/{bindingId} [put]
func (c *CollaboratorController) ChangeCollaboratorRole(ctx *gin.Context) {
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

	bindingID, err := uuid.Parse(ctx.Param("bindingId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid binding ID"})
		return
	}

	var request projects_dto.ChangeCollaboratorRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.collaboratorService.ChangeCollaboratorRole(projectID, bindingID, request.Role, user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RemoveCollaborator
// @Summary Remove a collaborator from a project
// @Tags collaborators
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param bindingId path string true "Binding ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/collaborators/{id}/{bindingId} [delete]
func (c *CollaboratorController) RemoveCollaborator(ctx *gin.Context) {
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

	bindingID, err := uuid.Parse(ctx.Param("bindingId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid binding ID"})
		return
	}

	if err := c.collaboratorService.RemoveCollaborator(projectID, bindingID, user); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Collaborator removed successfully"})
}
