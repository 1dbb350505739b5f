package storage

import (
	"errors"

	"github.com/julianstephens/tasklit/internal/models"
)

var (
	// ErrNotFound is returned for a missing task or key.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when no store exists yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'tasklit init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Key-value blobs
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error

	// Utils
	GetConfigPath() string
}
