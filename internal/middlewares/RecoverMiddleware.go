package middlewares

import (
	"Staffline/internal/logging"
	"Staffline/utils"
	"net/http"

	"github.com/gorilla/mux"
)

// RecoverMiddleware turns a panicking handler into the same 500 body every
// other unclassified failure gets.
func RecoverMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				logging.Logger.Errorw("handler panicked",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", recovered,
				)
				utils.WriteJson(w, http.StatusInternalServerError, utils.ErrorResponseDto{
					Error: utils.InternalServerErrorMessage,
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
