package projects_services

import (
	"sync"

	"wedsync/internal/cache"
	projects_repositories "wedsync/internal/features/projects/repositories"
	users_enums "wedsync/internal/features/users/enums"
	users_repositories "wedsync/internal/features/users/repositories"
	cache_utils "wedsync/internal/util/cache"
)

var (
	once                sync.Once
	projectService      *ProjectService
	collaboratorService *CollaboratorService
)

// setUp builds the shared service singletons on first use, so importing
// this package never touches valkey or the environment.
func setUp() {
	projectRepository := &projects_repositories.ProjectRepository{}
	bindingRepository := &projects_repositories.BindingRepository{}
	userRepository := &users_repositories.UserRepository{}

	roleCache := cache_utils.NewCacheUtil[users_enums.ProjectRole](cache.GetCache(), "project_role:")

	projectService = NewProjectService(projectRepository, bindingRepository, roleCache)
	collaboratorService = NewCollaboratorService(bindingRepository, userRepository, projectService)
}

func GetProjectService() *ProjectService {
	once.Do(setUp)
	return projectService
}

func GetCollaboratorService() *CollaboratorService {
	once.Do(setUp)
	return collaboratorService
}
