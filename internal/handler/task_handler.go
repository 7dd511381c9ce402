package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
	"github.com/fakhrymubarak/city-dashboard/internal/service"
	"github.com/gorilla/mux"
)

type TaskServiceInterface interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, title string) (*model.Task, error)
	Toggle(ctx context.Context, id string) (*model.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TaskHandler struct {
	TaskService TaskServiceInterface
}

func NewTaskHandler(svc TaskServiceInterface) *TaskHandler {
	return &TaskHandler{TaskService: svc}
}

func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.TaskService.List(r.Context())
	if err != nil {
		config.GetLogger().Errorw("Failed to list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching tasks")
		return
	}
	writeJSONResponse(w, http.StatusOK, tasks)
}

func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.TaskRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.TaskService.Create(r.Context(), req.Title)
	if errors.Is(err, service.ErrEmptyTitle) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		config.GetLogger().Errorw("Failed to create task", "error", err)
		writeError(w, http.StatusInternalServerError, "Error creating task")
		return
	}
	writeJSONResponse(w, http.StatusOK, task)
}

// HandleToggle serves POST /update-task/{id}, flipping the completed flag.
func (h *TaskHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	task, err := h.TaskService.Toggle(r.Context(), id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		config.GetLogger().Errorw("Failed to update task", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating task")
		return
	}
	writeJSONResponse(w, http.StatusOK, task)
}

func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.TaskService.Delete(r.Context(), id)
	if err != nil {
		config.GetLogger().Errorw("Failed to delete task", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Error deleting task")
		return
	}
	if !deleted {
		writeJSONResponse(w, http.StatusOK, model.MessageResponse("Task not found"))
		return
	}
	writeJSONResponse(w, http.StatusOK, model.MessageResponse("Task deleted"))
}
