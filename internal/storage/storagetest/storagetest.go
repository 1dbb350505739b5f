// Package storagetest holds a conformance suite shared by every storage.Provider.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/storage"
)

// Factory returns an initialized provider backed by fresh storage.
type Factory func(t *testing.T) storage.Provider

func sampleTask(id, content string, created time.Time) models.Task {
	return models.Task{
		ID:       id,
		Content:  content,
		Priority: models.PriorityHigh,
		Category: "work",
		Created:  created,
		Type:     models.TypeEvent,
		Status:   models.StatusPending,
	}
}

var timeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

// Run exercises settings, task and key-value behaviour of a provider.
func Run(t *testing.T, newProvider Factory) {
	t.Helper()

	t.Run("default settings", func(t *testing.T) {
		p := newProvider(t)
		got, err := p.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if diff := cmp.Diff(storage.DefaultSettings(), got); diff != "" {
			t.Errorf("default settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("save settings", func(t *testing.T) {
		p := newProvider(t)
		want := models.Settings{Timezone: "Europe/Berlin", CanvasWidth: 72, NeuralBlend: 0.25, MaxEpochs: 120}
		if err := p.SaveSettings(want); err != nil {
			t.Fatalf("SaveSettings() error = %v", err)
		}
		got, err := p.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("task lifecycle", func(t *testing.T) {
		p := newProvider(t)
		created := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
		due := created.Add(48 * time.Hour)

		first := sampleTask("aaaaaaaaaaaaaaaaaaaaaaaa", "Team meeting", created)
		first.Due = &due
		first.Context = "With: team"
		second := sampleTask("bbbbbbbbbbbbbbbbbbbbbbbb", "Buy milk", created.Add(time.Minute))
		second.Category = "shopping"
		second.Priority = models.PriorityLow
		second.Type = models.TypeTask

		for _, task := range []models.Task{first, second} {
			if err := p.AddTask(task); err != nil {
				t.Fatalf("AddTask(%s) error = %v", task.ID, err)
			}
		}

		got, err := p.GetTask(first.ID)
		if err != nil {
			t.Fatalf("GetTask() error = %v", err)
		}
		if diff := cmp.Diff(first, got, timeEqual); diff != "" {
			t.Errorf("GetTask mismatch (-want +got):\n%s", diff)
		}

		all, err := p.GetAllTasks()
		if err != nil {
			t.Fatalf("GetAllTasks() error = %v", err)
		}
		if diff := cmp.Diff([]models.Task{first, second}, all, timeEqual); diff != "" {
			t.Errorf("GetAllTasks mismatch (-want +got):\n%s", diff)
		}

		second.Status = models.StatusDone
		if err := p.UpdateTask(second); err != nil {
			t.Fatalf("UpdateTask() error = %v", err)
		}
		got, err = p.GetTask(second.ID)
		if err != nil {
			t.Fatalf("GetTask() error = %v", err)
		}
		if got.Status != models.StatusDone {
			t.Errorf("status = %s, want done", got.Status)
		}

		if err := p.DeleteTask(first.ID); err != nil {
			t.Fatalf("DeleteTask() error = %v", err)
		}
		if _, err := p.GetTask(first.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetTask() after delete error = %v, want ErrNotFound", err)
		}
		all, err = p.GetAllTasks()
		if err != nil {
			t.Fatalf("GetAllTasks() error = %v", err)
		}
		if diff := cmp.Diff([]string{second.ID}, taskIDs(all), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("remaining ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing tasks", func(t *testing.T) {
		p := newProvider(t)
		missing := sampleTask("cccccccccccccccccccccccc", "ghost", time.Now())
		if err := p.UpdateTask(missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateTask() error = %v, want ErrNotFound", err)
		}
		if err := p.DeleteTask(missing.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteTask() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid task rejected", func(t *testing.T) {
		p := newProvider(t)
		bad := sampleTask("dddddddddddddddddddddddd", "bad", time.Now())
		bad.Priority = "extreme"
		if err := p.AddTask(bad); err == nil {
			t.Error("AddTask() accepted an invalid priority")
		}
	})

	t.Run("key value", func(t *testing.T) {
		p := newProvider(t)
		if _, err := p.Get("weights"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get() on empty store error = %v, want ErrNotFound", err)
		}
		if err := p.Set("weights", `{"a":1}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := p.Set("weights", `{"a":2}`); err != nil {
			t.Fatalf("Set() overwrite error = %v", err)
		}
		got, err := p.Get("weights")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != `{"a":2}` {
			t.Errorf("Get() = %q, want overwritten value", got)
		}
		if err := p.Remove("weights"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := p.Get("weights"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get() after Remove error = %v, want ErrNotFound", err)
		}
	})
}

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
