package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/storage"
)

const taskColumns = `id, content, priority, category, created_at, due_at, context, type, status`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var created string
	var due sql.NullString
	if err := row.Scan(&t.ID, &t.Content, &t.Priority, &t.Category, &created, &due, &t.Context, &t.Type, &t.Status); err != nil {
		return models.Task{}, err
	}

	var err error
	t.Created, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to parse created_at for task %s: %w", t.ID, err)
	}
	if due.Valid {
		d, err := time.Parse(time.RFC3339Nano, due.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("failed to parse due_at for task %s: %w", t.ID, err)
		}
		t.Due = &d
	}
	return t, nil
}

func dueValue(t models.Task) interface{} {
	if t.Due == nil {
		return nil
	}
	return t.Due.Format(time.RFC3339Nano)
}

func (s *Store) AddTask(task models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Content, task.Priority, task.Category, task.Created.Format(time.RFC3339Nano),
		dueValue(task), task.Context, task.Type, task.Status)
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
	}
	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return t, err
}

// GetAllTasks returns tasks in insertion order.
func (s *Store) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(task models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE tasks
		SET content = ?, priority = ?, category = ?, created_at = ?, due_at = ?, context = ?, type = ?, status = ?
		WHERE id = ?`,
		task.Content, task.Priority, task.Category, task.Created.Format(time.RFC3339Nano),
		dueValue(task), task.Context, task.Type, task.Status, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	return requireAffected(res, task.ID)
}

func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
