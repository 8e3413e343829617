package handlers

import (
	"net/http"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/auth"
	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/dto"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task in a project (creator only)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task; project is the project id"
// @Success      201   {object}  dto.TaskResponse
// @Failure      403   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), u.ID, dom.Task{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate.Ptr(),
		ProjectID:   req.Project,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// Get godoc
// @Summary      Get a task with its project
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskDetailResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), u.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToDetail(t))
}

// Update godoc
// @Summary      Edit a task (project creator only)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Patch; empty fields keep stored values"
// @Success      200   {object}  dto.TaskDetailResponse
// @Failure      403   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), u.ID, id, service.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToDetail(t))
}

// Delete godoc
// @Summary      Delete a task (project creator only)
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), u.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "task deleted"})
}

// ToggleState godoc
// @Summary      Toggle a task's completion state (creator or collaborator)
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskDetailResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /tasks/state/{id} [post]
func (h *TaskHandler) ToggleState(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.ToggleState(c.Request.Context(), u.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToDetail(t))
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Done:        t.Done,
		Project:     t.ProjectID,
		CompletedBy: completedBy(t),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func taskToDetail(t dom.Task) dto.TaskDetailResponse {
	out := dto.TaskDetailResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Done:        t.Done,
		CompletedBy: completedBy(t),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Project != nil {
		out.Project = projectToResponse(*t.Project)
	}
	return out
}

func completedBy(t dom.Task) *dto.CompletedByResponse {
	if t.CompletedByID == nil {
		return nil
	}
	return &dto.CompletedByResponse{ID: *t.CompletedByID, Name: t.CompletedByName}
}
