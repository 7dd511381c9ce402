package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"gorm.io/gorm"
)

type TaskRepository interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, title string) (*model.Task, error)
	Toggle(ctx context.Context, id string) (*model.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// List returns every task, oldest first.
func (r *taskRepository) List(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, title string) (*model.Task, error) {
	task := &model.Task{Title: title}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Toggle flips the completed flag inside a transaction and returns the stored task.
func (r *taskRepository) Toggle(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		task.Completed = !task.Completed
		return tx.Model(&task).Update("completed", task.Completed).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return &task, nil
}

// Delete reports whether a task with id existed.
func (r *taskRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete task %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
