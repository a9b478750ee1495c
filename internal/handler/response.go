package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// RespondWithJSON envoie une réponse JSON avec le code HTTP donné
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}
