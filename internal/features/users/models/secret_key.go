package users_models

// SecretKey holds the JWT signing secret. A single row is generated on
// first boot so tokens survive restarts.
type SecretKey struct {
	Secret string `gorm:"column:secret"`
}

func (SecretKey) TableName() string {
	return "secret_keys"
}
