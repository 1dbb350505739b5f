package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/julianstephens/tasklit/internal/models"
)

const jsonStoreVersion = 1

type document struct {
	Version  int               `json:"version"`
	Settings models.Settings   `json:"settings"`
	Tasks    []models.Task     `json:"tasks"`
	KV       map[string]string `json:"kv"`
}

// JSONStore keeps everything in one JSON file that is rewritten atomically on
// every mutation.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Init creates the file with default settings, or loads it when it already exists.
func (s *JSONStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{
		Version:  jsonStoreVersion,
		Settings: DefaultSettings(),
		KV:       make(map[string]string),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.doc != nil {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version %d is newer than supported version %d", doc.Version, jsonStoreVersion)
	}
	if doc.KV == nil {
		doc.KV = make(map[string]string)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return errors.New("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) indexOf(id string) int {
	for i, t := range s.doc.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONStore) AddTask(task models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return err
	}
	if s.indexOf(task.ID) >= 0 {
		return fmt.Errorf("task %s already exists", task.ID)
	}
	s.doc.Tasks = append(s.doc.Tasks, task)
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if err := s.loaded(); err != nil {
		return models.Task{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return s.doc.Tasks[i], nil
}

// GetAllTasks returns tasks in insertion order.
func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	tasks := make([]models.Task, len(s.doc.Tasks))
	copy(tasks, s.doc.Tasks)
	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return err
	}
	i := s.indexOf(task.ID)
	if i < 0 {
		return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
	}
	s.doc.Tasks[i] = task
	return s.save()
}

func (s *JSONStore) DeleteTask(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	s.doc.Tasks = append(s.doc.Tasks[:i], s.doc.Tasks[i+1:]...)
	return s.save()
}

func (s *JSONStore) Get(key string) (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	v, ok := s.doc.KV[key]
	if !ok {
		return "", fmt.Errorf("key %s: %w", key, ErrNotFound)
	}
	return v, nil
}

func (s *JSONStore) Set(key, value string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.KV[key] = value
	return s.save()
}

func (s *JSONStore) Remove(key string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	delete(s.doc.KV, key)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
