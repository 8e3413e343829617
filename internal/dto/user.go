package dto

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the JSON body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest is the JSON body for POST /users/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// NewPasswordRequest is the JSON body for POST /users/forgot-password/:token.
type NewPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse is the public shape of an identity (no hash, no token).
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse is returned by POST /users/login.
type LoginResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// MessageResponse is the generic {msg} acknowledgement / error body.
type MessageResponse struct {
	Msg string `json:"msg"`
}
