package api

import (
	"errors"
	"net/http"

	"geo_ads/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindForm binds the submitted form into dst and maps the first failing field
// to its user-facing message. It returns "" when the form is valid.
func bindForm(c *gin.Context, dst any, messages map[string]string) string {
	err := c.ShouldBind(dst)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return msg
		}
	}
	return "Invalid form"
}

// errorStatus maps the error taxonomy to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// renderForm answers an admin form request with its context and an error string
func renderForm(c *gin.Context, status int, form gin.H, errMsg string) {
	form["error"] = errMsg
	c.JSON(status, form)
}
