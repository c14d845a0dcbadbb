package api

import (
	"net/http"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type dashboardHandler struct {
	responder     Responder
	logger        zerolog.Logger
	dashboardRepo *database.DashboardRepo
}

func newDashboardHandler(dashboardRepo *database.DashboardRepo) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		dashboardRepo: dashboardRepo,
	}
}

// getDashboard returns the admin overview
// @Summary Dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Dashboard
// @Failure 403 {object} ErrorResponse
// @Router /dashboard [get]
func (h dashboardHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := h.dashboardRepo.Summary(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("summarize", "dashboard", err))
			return
		}

		h.responder.WriteJSON(w, dashboard)
	}
}
