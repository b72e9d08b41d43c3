package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	users_models "wedsync/internal/features/users/models"
	"wedsync/internal/storage"

	"gorm.io/gorm"
)

type SecretKeyRepository struct {
	mu     sync.Mutex
	cached string
}

// GetSecretKey returns the JWT signing secret, generating and persisting
// one on first call.
func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	var key users_models.SecretKey

	err := storage.GetDb().First(&key).Error
	if err == nil {
		r.cached = key.Secret
		return key.Secret, nil
	}

	if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to load secret key: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	key = users_models.SecretKey{Secret: hex.EncodeToString(raw)}
	if err := storage.GetDb().Create(&key).Error; err != nil {
		return "", fmt.Errorf("failed to persist secret key: %w", err)
	}

	r.cached = key.Secret

	return key.Secret, nil
}
