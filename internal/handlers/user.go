package handlers

import (
	"net/http"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/auth"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/dto"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles registration, confirmation, login and password reset.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary      Register a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if _, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{
		Msg: "account created, check your email to confirm it",
	})
}

// Login godoc
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

// Confirm godoc
// @Summary      Confirm an account with the emailed token
// @Tags         users
// @Produce      json
// @Param        token  path      string  true  "Confirmation token"
// @Success      200    {object}  dto.MessageResponse
// @Failure      404    {object}  dto.MessageResponse
// @Router       /users/confirm/{token} [get]
func (h *UserHandler) Confirm(c *gin.Context) {
	if err := h.svc.Confirm(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "account confirmed"})
}

// ForgotPassword godoc
// @Summary      Request a password-reset token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ForgotPasswordRequest  true  "Email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /users/forgot-password [post]
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "we sent an email with reset instructions"})
}

// CheckResetToken godoc
// @Summary      Check a password-reset token
// @Tags         users
// @Produce      json
// @Param        token  path      string  true  "Reset token"
// @Success      200    {object}  dto.MessageResponse
// @Failure      404    {object}  dto.MessageResponse
// @Router       /users/forgot-password/{token} [get]
func (h *UserHandler) CheckResetToken(c *gin.Context) {
	if err := h.svc.CheckResetToken(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "valid token"})
}

// ResetPassword godoc
// @Summary      Set a new password with a reset token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        token  path      string                  true  "Reset token"
// @Param        body   body      dto.NewPasswordRequest  true  "New password"
// @Success      200    {object}  dto.MessageResponse
// @Failure      404    {object}  dto.MessageResponse
// @Router       /users/forgot-password/{token} [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.NewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "password updated"})
}

// Profile godoc
// @Summary      Current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.MessageResponse
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	u, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "authorization required"})
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}
