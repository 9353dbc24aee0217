package httpapi

import (
	"net/http"

	"github.com/jverhelst/scorecast/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.KeepAlive)
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("POST /v1/predictions", handler.SubmitPrediction)
	mux.HandleFunc("GET /v1/predictions", handler.GetPrediction)
	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/history", handler.GetHistory)
	mux.HandleFunc("POST /v1/users/register", handler.RegisterUser)
	mux.HandleFunc("POST /v1/users/reminders", handler.SetReminderPreference)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
