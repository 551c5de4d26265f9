package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"geo_ads/internal/domain"  // Error taxonomy
	"geo_ads/internal/service" // Store operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserForm is the /new_user form
type UserForm struct {
	Username string `form:"username" binding:"required"` // Unique username
	Password string `form:"password" binding:"required"` // Must not be empty
	Email    string `form:"email"`                       // Optional
	IsAdmin  string `form:"is_admin"`                    // Checkbox, "on" when ticked
}

var userFormMessages = map[string]string{
	"Username": "Invalid username",
	"Password": "Invalid password",
}

func userFormContext(username string) gin.H {
	return gin.H{"username": username}
}

// NewUserFormHandler returns the context of the new user form
func NewUserFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderForm(c, http.StatusOK, userFormContext(""), "")
	}
}

// CreateUserHandler stores a new user and redirects to the landing page
func CreateUserHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserForm
		if msg := bindForm(c, &req, userFormMessages); msg != "" {
			renderForm(c, http.StatusBadRequest, userFormContext(c.PostForm("username")), msg)
			return
		}
		isAdmin := req.IsAdmin == "on"
		if _, err := svc.CreateUser(c.Request.Context(), req.Username, req.Password, req.Email, isAdmin); err != nil {
			msg := "An error happened"
			switch {
			case errors.Is(err, domain.ErrConflict):
				msg = "Username already in use"
			case errors.Is(err, domain.ErrInvalidInput):
				msg = "Invalid password"
			}
			renderForm(c, errorStatus(err), userFormContext(req.Username), msg)
			return
		}
		c.Redirect(http.StatusFound, "/")
	}
}

// ListUsersHandler returns every user without password hashes
func ListUsersHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}
