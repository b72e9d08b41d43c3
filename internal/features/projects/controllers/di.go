package projects_controllers

import (
	"sync"

	projects_services "wedsync/internal/features/projects/services"
)

var (
	once                   sync.Once
	projectController      *ProjectController
	collaboratorController *CollaboratorController
)

func setUp() {
	projectController = &ProjectController{
		projectService: projects_services.GetProjectService(),
	}
	collaboratorController = &CollaboratorController{
		collaboratorService: projects_services.GetCollaboratorService(),
	}
}

func GetProjectController() *ProjectController {
	once.Do(setUp)
	return projectController
}

func GetCollaboratorController() *CollaboratorController {
	once.Do(setUp)
	return collaboratorController
}
