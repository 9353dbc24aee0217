package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/jverhelst/scorecast/internal/platform/logging"
	"github.com/jverhelst/scorecast/internal/usecase"
)

type Handler struct {
	predictionService  *usecase.PredictionService
	leaderboardService *usecase.LeaderboardService
	historyService     *usecase.HistoryService
	userService        *usecase.UserService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	predictionService *usecase.PredictionService,
	leaderboardService *usecase.LeaderboardService,
	historyService *usecase.HistoryService,
	userService *usecase.UserService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		predictionService:  predictionService,
		leaderboardService: leaderboardService,
		historyService:     historyService,
		userService:        userService,
		logger:             logger,
		validator:          validator.New(),
	}
}

// KeepAlive answers uptime pollers with a plain text body.
func (h *Handler) KeepAlive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("I'm alive!"))
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type submitPredictionRequest struct {
	UserID    string `json:"userId" validate:"required"`
	MatchID   string `json:"matchId" validate:"required"`
	HomeGoals int    `json:"homeGoals" validate:"min=0,max=19"`
	AwayGoals int    `json:"awayGoals" validate:"min=0,max=19"`
}

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	var req submitPredictionRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.predictionService.Submit(ctx, req.UserID, req.MatchID, req.HomeGoals, req.AwayGoals); err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed",
			"user_id", req.UserID,
			"match_id", req.MatchID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]string{
		"userId":  req.UserID,
		"matchId": req.MatchID,
	})
}

type predictionDTO struct {
	UserID    string `json:"userId"`
	MatchID   string `json:"matchId"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
	Points    *int   `json:"points,omitempty"`
}

func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPrediction")
	defer span.End()

	userID := r.URL.Query().Get("userId")
	matchID := r.URL.Query().Get("matchId")
	if userID == "" || matchID == "" {
		writeError(ctx, w, fmt.Errorf("%w: userId and matchId query parameters are required", usecase.ErrInvalidInput))
		return
	}

	pred, err := h.predictionService.PredictionFor(ctx, userID, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dto := predictionDTO{
		UserID:    pred.UserID,
		MatchID:   pred.MatchID,
		HomeGoals: pred.HomeGoals,
		AwayGoals: pred.AwayGoals,
	}
	if pred.Scored() {
		points := pred.Points
		dto.Points = &points
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}

type upcomingMatchDTO struct {
	MatchID    string         `json:"matchId"`
	HomeTeam   string         `json:"homeTeam"`
	AwayTeam   string         `json:"awayTeam"`
	KickoffAt  string         `json:"kickoffAt"`
	Stage      string         `json:"stage"`
	Matchday   int            `json:"matchday"`
	Status     string         `json:"status"`
	Prediction *predictionDTO `json:"prediction,omitempty"`
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	userID := r.URL.Query().Get("userId")
	upcoming, err := h.predictionService.UpcomingMatches(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list upcoming matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]upcomingMatchDTO, 0, len(upcoming))
	for _, um := range upcoming {
		dto := upcomingMatchDTO{
			MatchID:   um.Fixture.ID,
			HomeTeam:  um.Fixture.HomeTeam,
			AwayTeam:  um.Fixture.AwayTeam,
			KickoffAt: um.Fixture.KickoffAt.Format("2006-01-02T15:04:05Z07:00"),
			Stage:     um.Fixture.Stage,
			Matchday:  um.Fixture.Matchday,
			Status:    um.Fixture.Status,
		}
		if um.Prediction != nil {
			dto.Prediction = &predictionDTO{
				UserID:    um.Prediction.UserID,
				MatchID:   um.Prediction.MatchID,
				HomeGoals: um.Prediction.HomeGoals,
				AwayGoals: um.Prediction.AwayGoals,
			}
		}
		items = append(items, dto)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type standingDTO struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	Points int    `json:"points"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.leaderboardService.Leaderboard(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(entries))
	for i, entry := range entries {
		items = append(items, standingDTO{
			Rank:   i + 1,
			UserID: entry.UserID,
			Points: entry.Points,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

type historyEntryDTO struct {
	Time          string `json:"time"`
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam"`
	HomeScore     int    `json:"homeScore"`
	AwayScore     int    `json:"awayScore"`
	PredictedHome int    `json:"predictedHome"`
	PredictedAway int    `json:"predictedAway"`
	Points        int    `json:"points"`
}

type historyDayDTO struct {
	Date    string            `json:"date"`
	Entries []historyEntryDTO `json:"entries"`
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHistory")
	defer span.End()

	query := r.URL.Query()
	userID := query.Get("userId")
	rng, err := h.historyService.ParseRange(query.Get("from"), query.Get("to"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	days, err := h.historyService.History(ctx, userID, rng)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]historyDayDTO, 0, len(days))
	for _, day := range days {
		entries := make([]historyEntryDTO, 0, len(day.Entries))
		for _, entry := range day.Entries {
			entries = append(entries, historyEntryDTO{
				Time:          entry.Time,
				HomeTeam:      entry.HomeTeam,
				AwayTeam:      entry.AwayTeam,
				HomeScore:     entry.HomeScore,
				AwayScore:     entry.AwayScore,
				PredictedHome: entry.PredictedHome,
				PredictedAway: entry.PredictedAway,
				Points:        entry.Points,
			})
		}
		items = append(items, historyDayDTO{Date: day.Date, Entries: entries})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

type registerUserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterUser")
	defer span.End()

	var req registerUserRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.userService.Register(ctx, req.UserID); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, map[string]string{"userId": req.UserID})
}

type reminderPreferenceRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Enabled *bool  `json:"enabled" validate:"required"`
}

func (h *Handler) SetReminderPreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetReminderPreference")
	defer span.End()

	var req reminderPreferenceRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.userService.SetReminderEnabled(ctx, req.UserID, *req.Enabled); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"userId":  req.UserID,
		"enabled": *req.Enabled,
	})
}
