// Package health serves the liveness probe used by the process supervisor.
package health

import (
	"net/http"

	"github.com/Veikkosuhonen/cloudcafe/internal/utils/response"
)

// Check handles GET /health_check. It consults no dependencies, so it stays
// green while the database is down.
func Check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteEmpty(w, http.StatusOK)
	}
}
