package http

import (
	"net/http"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/dashboard"
	"github.com/daftar-hr/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetLiveStatuses(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetLiveStatuses implements DashboardHandler.
func (h *dashboardHandlerImpl) GetLiveStatuses(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetLiveStatuses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
