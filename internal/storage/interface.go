package storage

import "github.com/krishimitra/krishi/internal/models"

// Provider persists user records keyed by mobile number. Every save replaces
// the whole record; there is no field-level merging.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	GetUser(mobile string) (models.UserRecord, error)
	GetAllUsers() ([]models.UserRecord, error)
	SaveUser(models.UserRecord) error
	SaveAllUsers([]models.UserRecord) error

	// Utils
	GetConfigPath() string
}
