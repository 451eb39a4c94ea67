package handlers

import (
	"errors"
	"net/http"

	"tourbook/models"
	"tourbook/services/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves /api/auth.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(userService user.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

var authErrors = []statusRule{
	{user.ErrMissingFields, http.StatusBadRequest},
	{user.ErrEmailTaken, http.StatusBadRequest},
	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{user.ErrWrongPassword, http.StatusUnauthorized},
	{user.ErrInvalidResetCode, http.StatusBadRequest},
	{user.ErrUserNotFound, http.StatusNotFound},
}

// RegisterHandler handles POST /api/auth/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Invalid registration", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, user.ErrMissingFields.Error())
		return
	}
	resp, err := h.UserService.Register(req)
	if err != nil {
		respondError(c, err, authErrors...)
		return
	}
	success(c, http.StatusCreated, gin.H{"message": "User registered successfully", "token": resp.Token, "user": resp.User})
}

// LoginHandler handles POST /api/auth/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, user.ErrMissingFields.Error())
		return
	}
	resp, err := h.UserService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err, authErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Login successful", "token": resp.Token, "user": resp.User})
}

// LogoutHandler revokes the caller's token.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	if err := h.UserService.Logout(c.Request.Context(), sess.UserID); err != nil {
		respondError(c, err, authErrors...)
		return
	}
	getLogger(c).Info("User logged out", zap.String("userID", sess.UserID))
	success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *UserHandler) MeHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	u, err := h.UserService.GetUserByID(sess.UserID)
	if err != nil {
		respondError(c, err, authErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"user": u})
}

// UpdateMeHandler handles PUT /api/auth/me.
func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.UserService.UpdateProfile(sess.UserID, req)
	if err != nil {
		respondError(c, err, authErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "User details updated successfully", "user": u})
}

// ChangePasswordHandler returns a fresh token; the old one stops working.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, user.ErrMissingFields.Error())
		return
	}
	resp, err := h.UserService.ChangePassword(c.Request.Context(), sess.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		respondError(c, err, authErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Password changed successfully", "token": resp.Token})
}

func (h *UserHandler) ForgotPasswordHandler(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email is required")
		return
	}
	if err := h.UserService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Email not found")
			return
		}
		respondError(c, err, authErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Password reset instructions sent to email"})
}

func (h *UserHandler) ResetPasswordHandler(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, user.ErrMissingFields.Error())
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		respondError(c, err, authErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Password reset successfully"})
}
