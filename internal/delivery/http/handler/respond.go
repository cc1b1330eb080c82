package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caserne/backend/internal/domain/apperr"
)

// ErrorResponse est la forme d'erreur du contrat : message lisible,
// champ fautif optionnel.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// respondError traduit la taxonomie d'erreurs du domaine en réponse HTTP.
// Les erreurs inattendues sont loguées mais jamais exposées au client.
func respondError(c *gin.Context, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: ve.Message, Field: ve.Field})
		return
	}
	if nf, ok := apperr.AsNotFound(err); ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: nf.Message})
		return
	}
	slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
}
