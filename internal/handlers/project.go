package handlers

import (
	"net/http"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/auth"
	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/dto"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List godoc
// @Summary      List projects the caller creates or collaborates on
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListProjectsResponse
// @Failure      401  {object}  dto.MessageResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	list, err := h.svc.List(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.ProjectResponse, len(list))
	for i := range list {
		out[i] = projectToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListProjectsResponse{Items: out})
}

// Create godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateProjectRequest  true  "Project"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.MessageResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), u.ID, req.Name, req.Description, req.Client, req.DueDate.Ptr())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectToResponse(p))
}

// Get godoc
// @Summary      Get a project with collaborators and tasks
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  dto.ProjectDetailResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), u.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToDetail(p))
}

// Update godoc
// @Summary      Edit a project (creator only)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Project ID"
// @Param        body  body      dto.UpdateProjectRequest  true  "Patch; empty fields keep stored values"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      403   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), u.ID, id, service.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Client:      req.Client,
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(p))
}

// Delete godoc
// @Summary      Delete a project (creator only)
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), u.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "project deleted"})
}

// FindCollaborator godoc
// @Summary      Look up a collaborator candidate by email
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CollaboratorEmailRequest  true  "Email"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /projects/collaborators [post]
func (h *ProjectHandler) FindCollaborator(c *gin.Context) {
	var req dto.CollaboratorEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	candidate, err := h.svc.FindCollaborator(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{ID: candidate.ID, Name: candidate.Name, Email: candidate.Email})
}

// AddCollaborator godoc
// @Summary      Add a collaborator to a project (creator only)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                           true  "Project ID"
// @Param        body  body      dto.CollaboratorEmailRequest  true  "Candidate email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /projects/collaborators/{id} [post]
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CollaboratorEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := h.svc.AddCollaborator(c.Request.Context(), u.ID, id, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "collaborator added"})
}

// RemoveCollaborator godoc
// @Summary      Remove a collaborator from a project (creator only)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                            true  "Project ID"
// @Param        body  body      dto.RemoveCollaboratorRequest  true  "Collaborator user id"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /projects/remove-collaborator/{id} [post]
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	u, _ := auth.UserFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RemoveCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := h.svc.RemoveCollaborator(c.Request.Context(), u.ID, id, req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "collaborator removed"})
}

func projectToResponse(p dom.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Client:      p.Client,
		DueDate:     p.DueDate,
		Creator:     p.CreatorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func projectToDetail(p dom.Project) dto.ProjectDetailResponse {
	collabs := make([]dto.UserResponse, len(p.Collaborators))
	for i, u := range p.Collaborators {
		collabs[i] = dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	tasks := make([]dto.TaskResponse, len(p.Tasks))
	for i := range p.Tasks {
		tasks[i] = taskToResponse(p.Tasks[i])
	}
	return dto.ProjectDetailResponse{
		ProjectResponse: projectToResponse(p),
		Collaborators:   collabs,
		Tasks:           tasks,
	}
}
