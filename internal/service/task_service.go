package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
)

var ErrEmptyTitle = errors.New("title is required")

type TaskService struct {
	Tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{Tasks: tasks}
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.Tasks.List(ctx)
}

func (s *TaskService) Create(ctx context.Context, title string) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return s.Tasks.Create(ctx, title)
}

// Toggle flips the completed flag. Missing tasks return repository.ErrTaskNotFound.
func (s *TaskService) Toggle(ctx context.Context, id string) (*model.Task, error) {
	return s.Tasks.Toggle(ctx, id)
}

// Delete reports whether the task existed.
func (s *TaskService) Delete(ctx context.Context, id string) (bool, error) {
	return s.Tasks.Delete(ctx, id)
}
