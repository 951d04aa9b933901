package dto

import "gearguard/internal/analytics"

type AttentionItemDTO struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	HealthPercentage int    `json:"healthPercentage"`
	Status           string `json:"status"`
	BarColor         string `json:"barColor"`
}

type ReportDTO struct {
	TotalEquipment     int                `json:"totalEquipment"`
	TotalRequests      int                `json:"totalRequests"`
	CompletionRate     int                `json:"completionRate"`
	AverageHealth      int                `json:"averageHealth"`
	CriticalEquipment  int                `json:"criticalEquipment"`
	OverdueRequests    int                `json:"overdueRequests"`
	ByStage            []analytics.Share  `json:"byStage"`
	ByPriority         []analytics.Share  `json:"byPriority"`
	ByType             []analytics.Share  `json:"byType"`
	HealthDistribution []analytics.Share  `json:"healthDistribution"`
	NeedsAttention     []AttentionItemDTO `json:"needsAttention"`
}

type SyncResultDTO struct {
	Equipment int `json:"equipment"`
	Requests  int `json:"requests"`
	Teams     int `json:"teams"`
	Stages    int `json:"stages"`
}
