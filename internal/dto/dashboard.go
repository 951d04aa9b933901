package dto

import "gearguard/internal/analytics"

// RemoteStatsDTO - счётчики /dashboard/stats удалённого API, если он ответил.
type RemoteStatsDTO struct {
	TotalOpenRequests int `json:"totalOpenRequests"`
	CriticalEquipment int `json:"criticalEquipment"`
	OverdueTasks      int `json:"overdueTasks"`
	MyPendingTasks    int `json:"myPendingTasks"`
}

type DashboardDTO struct {
	Role           string           `json:"role"`
	Stats          []analytics.Stat `json:"stats"`
	RecentRequests []RequestDTO     `json:"recentRequests"`
	Remote         *RemoteStatsDTO  `json:"remote,omitempty"`
	Loading        bool             `json:"loading"`
}
