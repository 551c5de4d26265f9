package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"geo_ads/internal/domain"  // Client types and errors
	"geo_ads/internal/service" // Store operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// ClientForm is the /new_client form
type ClientForm struct {
	Name string `form:"client_name" binding:"required"`              // Unique client name
	Type string `form:"client_type" binding:"oneof=paid trial demo"` // One of domain.ClientTypes
}

var clientFormMessages = map[string]string{
	"Name": "Invalid client name",
	"Type": "Invalid type",
}

func clientFormContext(name string) gin.H {
	return gin.H{"client_name": name, "client_types": domain.ClientTypes}
}

// NewClientFormHandler returns the context of the new client form
func NewClientFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderForm(c, http.StatusOK, clientFormContext(""), "")
	}
}

// CreateClientHandler stores a new client and redirects to the landing page
func CreateClientHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ClientForm
		if msg := bindForm(c, &req, clientFormMessages); msg != "" {
			renderForm(c, http.StatusBadRequest, clientFormContext(c.PostForm("client_name")), msg)
			return
		}
		if _, err := svc.CreateClient(c.Request.Context(), req.Name, req.Type, 0); err != nil {
			msg := "An error happened"
			if errors.Is(err, domain.ErrConflict) {
				msg = "Client name already in use"
			}
			renderForm(c, errorStatus(err), clientFormContext(req.Name), msg)
			return
		}
		c.Redirect(http.StatusFound, "/")
	}
}

// ListClientsHandler returns every client
func ListClientsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		clients, err := svc.ListClients(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients})
	}
}
