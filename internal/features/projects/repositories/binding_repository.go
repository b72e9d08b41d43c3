package projects_repositories

import (
	"time"

	projects_models "wedsync/internal/features/projects/models"
	users_enums "wedsync/internal/features/users/enums"
	"wedsync/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BindingRepository struct{}

func (r *BindingRepository) InsertBinding(binding *projects_models.CollaboratorBinding) error {
	if binding.ID == uuid.Nil {
		binding.ID = uuid.New()
	}

	if binding.Status == "" {
		binding.Status = projects_models.BindingStatusActive
	}

	if binding.CreatedAt.IsZero() {
		binding.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(binding).Error
}

func (r *BindingRepository) GetBindingByID(bindingID uuid.UUID) (*projects_models.CollaboratorBinding, error) {
	var binding projects_models.CollaboratorBinding

	if err := storage.GetDb().Where("id = ?", bindingID).First(&binding).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &binding, nil
}

func (r *BindingRepository) GetBindingByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.CollaboratorBinding, error) {
	var binding projects_models.CollaboratorBinding

	err := storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&binding).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &binding, nil
}

func (r *BindingRepository) ListBindingsByProject(
	projectID uuid.UUID,
) ([]*projects_models.CollaboratorBinding, error) {
	var bindings []*projects_models.CollaboratorBinding

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&bindings).Error

	return bindings, err
}

func (r *BindingRepository) ListProjectIDsByUser(
	userID uuid.UUID,
) (map[uuid.UUID]users_enums.ProjectRole, error) {
	var bindings []*projects_models.CollaboratorBinding

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Find(&bindings).Error
	if err != nil {
		return nil, err
	}

	roles := make(map[uuid.UUID]users_enums.ProjectRole, len(bindings))
	for _, binding := range bindings {
		roles[binding.ProjectID] = binding.Role
	}

	return roles, nil
}

func (r *BindingRepository) UpdateBindingRole(bindingID uuid.UUID, role users_enums.ProjectRole) error {
	return storage.GetDb().
		Model(&projects_models.CollaboratorBinding{}).
		Where("id = ?", bindingID).
		Update("role", role).Error
}

func (r *BindingRepository) DeleteBinding(bindingID uuid.UUID) error {
	return storage.GetDb().
		Where("id = ?", bindingID).
		Delete(&projects_models.CollaboratorBinding{}).Error
}

func (r *BindingRepository) CountOwners(projectID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&projects_models.CollaboratorBinding{}).
		Where("project_id = ? AND role = ?", projectID, users_enums.ProjectRoleOwner).
		Count(&count).Error

	return count, err
}
