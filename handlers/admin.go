package handlers

import (
	"net/http"

	"tourbook/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the user management endpoints under /api/auth/admin.
type AdminHandler struct {
	UserService user.UserService
}

func NewAdminHandler(userService user.UserService) *AdminHandler {
	return &AdminHandler{UserService: userService}
}

// GetAllUsersHandler returns a list of all registered users.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.UserService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err, statusRule{user.ErrUserNotFound, http.StatusNotFound})
		return
	}
	getLogger(c).Info("Admin deleted user", zap.String("userID", id))
	success(c, http.StatusOK, gin.H{"message": "User deleted"})
}

// ToggleAdminHandler flips the admin flag of a user.
func (h *AdminHandler) ToggleAdminHandler(c *gin.Context) {
	u, err := h.UserService.ToggleAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, statusRule{user.ErrUserNotFound, http.StatusNotFound})
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Admin status updated", "is_admin": u.IsAdmin})
}
