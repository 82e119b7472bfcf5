package dashboard

import "context"

// DashboardService computes the live per-user status projection. The
// projection is ephemeral; nothing it shows is persisted.
type DashboardService interface {
	GetLiveStatuses(ctx context.Context) (LiveStatusResponse, error)
}
