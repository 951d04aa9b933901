package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/entities"
)

func u64(v uint64) *uint64 { return &v }
func str(v string) *string { return &v }

func sumShares(shares []Share) float64 {
	var total float64
	for _, s := range shares {
		total += s.Percentage
	}
	return total
}

func TestHealthPolicy_Boundaries(t *testing.T) {
	p := DefaultHealthPolicy()

	cases := []struct {
		health int
		bucket HealthBucket
		bar    BarColor
	}{
		{29, BucketCritical, BarRed},
		{30, BucketWarning, BarRed},
		{49, BucketWarning, BarRed},
		{50, BucketWarning, BarYellow},
		{69, BucketWarning, BarYellow},
		{70, BucketHealthy, BarYellow},
		{79, BucketHealthy, BarYellow},
		{80, BucketHealthy, BarGreen},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.bucket, p.Bucket(tc.health), "bucket(%d)", tc.health)
		assert.Equal(t, tc.bar, p.BarColor(tc.health), "bar(%d)", tc.health)
	}
}

func TestHealthPolicy_BucketList(t *testing.T) {
	p := DefaultHealthPolicy()
	equipment := []entities.Equipment{
		{ID: 1, HealthPercentage: 25},
		{ID: 2, HealthPercentage: 55},
		{ID: 3, HealthPercentage: 69},
		{ID: 4, HealthPercentage: 90},
	}
	assert.Equal(t, []HealthBucket{BucketCritical, BucketWarning, BucketWarning, BucketHealthy}, p.Buckets(equipment))

	dist := p.HealthDistribution(equipment)
	require.Len(t, dist, 3)
	assert.Equal(t, 1, dist[0].Count)
	assert.Equal(t, 2, dist[1].Count)
	assert.Equal(t, 1, dist[2].Count)
	assert.InDelta(t, 100, sumShares(dist), 0.3)

	edges := []entities.Equipment{
		{ID: 1, HealthPercentage: 29},
		{ID: 2, HealthPercentage: 30},
		{ID: 3, HealthPercentage: 69},
		{ID: 4, HealthPercentage: 70},
	}
	assert.Equal(t, []HealthBucket{BucketCritical, BucketWarning, BucketWarning, BucketHealthy}, p.Buckets(edges))
}

func TestNewHealthPolicy_RejectsInvertedThresholds(t *testing.T) {
	_, err := NewHealthPolicy(70, 30, 80, 50)
	assert.Error(t, err)

	_, err = NewHealthPolicy(30, 70, 50, 80)
	assert.Error(t, err)
}

func TestFilterEquipment(t *testing.T) {
	p := DefaultHealthPolicy()
	equipment := []entities.Equipment{{ID: 1, HealthPercentage: 0}, {ID: 2, HealthPercentage: 50}, {ID: 3, HealthPercentage: 70}}

	assert.Len(t, p.FilterEquipment(equipment, "all"), 3)
	assert.Len(t, p.FilterEquipment(equipment, ""), 3)
	critical := p.FilterEquipment(equipment, "critical")
	require.Len(t, critical, 1)
	assert.Equal(t, uint64(1), critical[0].ID)
	healthy := p.FilterEquipment(equipment, "healthy")
	require.Len(t, healthy, 1)
	assert.Equal(t, uint64(3), healthy[0].ID)
}

func TestRates_EmptyInput(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(entities.Snapshot{}))
	assert.Equal(t, 0, AverageHealth(nil))
	assert.Equal(t, 0.0, Percentage(3, 0))
	for _, s := range ByPriority(nil) {
		assert.Equal(t, 0.0, s.Percentage)
	}
}

func TestRates_Values(t *testing.T) {
	snap := entities.Snapshot{
		Stages: entities.DefaultStages(),
		Requests: []entities.MaintenanceRequest{
			{ID: 1, StageID: 1},
			{ID: 2, StageID: 3},
			{ID: 3, StageID: 4},
			{ID: 4, StageID: 99},
		},
	}
	// 2 из 4 закрыты, осиротевшая не считается закрытой
	assert.Equal(t, 50, CompletionRate(snap))

	assert.Equal(t, 67, AverageHealth([]entities.Equipment{{HealthPercentage: 100}, {HealthPercentage: 100}, {HealthPercentage: 0}}))
	assert.Equal(t, 33.3, Percentage(1, 3))
}

func TestDistributions_SumTo100(t *testing.T) {
	stages := entities.DefaultStages()
	requests := []entities.MaintenanceRequest{
		{ID: 1, StageID: 1, Priority: entities.PriorityLow, MaintenanceType: entities.MaintenanceCorrective},
		{ID: 2, StageID: 2, Priority: entities.PriorityHigh, MaintenanceType: entities.MaintenancePreventive},
		{ID: 3, StageID: 2, Priority: entities.PriorityCritical, MaintenanceType: entities.MaintenanceCorrective},
		{ID: 4, StageID: 77, Priority: "urgent", MaintenanceType: ""},
		{ID: 5, StageID: 3, Priority: entities.PriorityMedium, MaintenanceType: entities.MaintenancePreventive},
		{ID: 6, StageID: 4, Priority: entities.PriorityLow, MaintenanceType: entities.MaintenanceCorrective},
	}

	byStage := ByStage(requests, stages)
	require.Len(t, byStage, 5)
	assert.Equal(t, "New Request", byStage[0].Label)
	assert.Equal(t, "Scrap", byStage[3].Label)
	assert.Equal(t, UnknownKey, byStage[4].Key)
	assert.Equal(t, 1, byStage[4].Count)
	assert.InDelta(t, 100, sumShares(byStage), 0.1*float64(len(byStage)))

	byPriority := ByPriority(requests)
	require.Len(t, byPriority, 5)
	assert.Equal(t, "critical", byPriority[0].Key)
	assert.Equal(t, 2, byPriority[3].Count)
	assert.InDelta(t, 100, sumShares(byPriority), 0.1*float64(len(byPriority)))

	byType := ByType(requests)
	require.Len(t, byType, 3)
	assert.Equal(t, "preventive", byType[0].Key)
	assert.InDelta(t, 100, sumShares(byType), 0.1*float64(len(byType)))
}

func TestDistributions_NoUnknownBucketWhenAllKnown(t *testing.T) {
	requests := []entities.MaintenanceRequest{{ID: 1, StageID: 1, Priority: entities.PriorityLow, MaintenanceType: entities.MaintenancePreventive}}
	assert.Len(t, ByStage(requests, entities.DefaultStages()), 4)
	assert.Len(t, ByPriority(requests), 4)
	assert.Len(t, ByType(requests), 2)
}

func TestOverdue(t *testing.T) {
	today := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	snap := entities.Snapshot{
		Stages: entities.DefaultStages(),
		Requests: []entities.MaintenanceRequest{
			{ID: 1, StageID: 1, ScheduledDate: str("2024-05-09")},
			{ID: 2, StageID: 1, ScheduledDate: str("2024-05-10")},
			{ID: 3, StageID: 3, ScheduledDate: str("2024-01-01")},
			{ID: 4, StageID: 2},
			{ID: 5, StageID: 2, ScheduledDate: str("не дата")},
		},
	}
	assert.Equal(t, 1, CountOverdue(snap, today))
}

func TestIsOverdue_ScheduledToday(t *testing.T) {
	snap := entities.Snapshot{Stages: entities.DefaultStages()}
	req := entities.MaintenanceRequest{ID: 1, StageID: 1, ScheduledDate: str("2024-05-10")}

	// весь плановый день заявка ещё не просрочена
	assert.False(t, IsOverdue(snap, req, time.Date(2024, 5, 10, 0, 0, 1, 0, time.UTC)))
	assert.False(t, IsOverdue(snap, req, time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)))
	assert.True(t, IsOverdue(snap, req, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)))
}

func TestRoleStats_EndUser(t *testing.T) {
	p := DefaultHealthPolicy()
	snap := entities.Snapshot{
		Stages: entities.DefaultStages(),
		Requests: []entities.MaintenanceRequest{
			{ID: 1, StageID: 1, CreatedByUserID: 7},
			{ID: 2, StageID: 2, CreatedByUserID: 7},
			{ID: 3, StageID: 3, CreatedByUserID: 7},
			{ID: 4, StageID: 1, CreatedByUserID: 8},
			{ID: 5, StageID: 1, CreatedByUserID: 9},
		},
	}

	stats := p.RoleStats(entities.RoleEndUser, 7, snap, time.Now())
	require.Len(t, stats, 1)
	assert.Equal(t, "My Requests", stats[0].Name)
	assert.Equal(t, 3, stats[0].Value)
	assert.Equal(t, 3, stats[0].Total)
	assert.Equal(t, "Created by me", stats[0].Description)
}

func TestRoleStats_Staff(t *testing.T) {
	p := DefaultHealthPolicy()
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	snap := entities.Snapshot{
		Stages: entities.DefaultStages(),
		Requests: []entities.MaintenanceRequest{
			{ID: 1, StageID: 1, TechnicianUserID: u64(5), ScheduledDate: str("2024-05-01")},
			{ID: 2, StageID: 2, TechnicianUserID: u64(5)},
			{ID: 3, StageID: 3, TechnicianUserID: u64(5)},
			{ID: 4, StageID: 55, TechnicianUserID: u64(5)},
			{ID: 5, StageID: 2, TechnicianUserID: u64(6)},
		},
	}

	stats := p.RoleStats(entities.RoleMaintenanceStaff, 5, snap, today)
	require.Len(t, stats, 2)
	assert.Equal(t, "Open Requests", stats[0].Name)
	assert.Equal(t, 3, stats[0].Value)
	assert.Equal(t, 5, stats[0].Total)
	assert.Equal(t, "1 Overdue", stats[0].Description)

	assert.Equal(t, "My Workload", stats[1].Name)
	assert.Equal(t, 3, stats[1].Value, "осиротевшая заявка считается незакрытой")
	assert.Equal(t, 3, stats[1].Total)
	assert.Equal(t, "yellow", stats[1].Color)
}

func TestRoleStats_Admin(t *testing.T) {
	p := DefaultHealthPolicy()
	snap := entities.Snapshot{
		Stages:    entities.DefaultStages(),
		Equipment: []entities.Equipment{{HealthPercentage: 10}, {HealthPercentage: 29}, {HealthPercentage: 30}, {HealthPercentage: 70}},
	}

	stats := p.RoleStats(entities.RoleSuperAdmin, 1, snap, time.Now())
	require.Len(t, stats, 3)
	assert.Equal(t, "critical_equipment", stats[0].Key)
	assert.Equal(t, 2, stats[0].Value)
	assert.Equal(t, 4, stats[0].Total)
	assert.Equal(t, "Health < 30%", stats[0].Description)
	assert.Equal(t, "open_requests", stats[1].Key)
	assert.Equal(t, "0 Overdue", stats[1].Description)
	assert.Equal(t, 1, stats[2].Value)
	assert.Equal(t, "green", stats[2].Color)
}

func TestRecentRequests(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var requests []entities.MaintenanceRequest
	for i := 1; i <= 8; i++ {
		owner := uint64(1)
		if i%2 == 0 {
			owner = 2
		}
		requests = append(requests, entities.MaintenanceRequest{ID: uint64(i), CreatedByUserID: owner, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	all := RecentRequests(entities.RoleSuperAdmin, 1, requests, 5)
	require.Len(t, all, 5)
	assert.Equal(t, uint64(8), all[0].ID)
	assert.Equal(t, uint64(4), all[4].ID)

	own := RecentRequests(entities.RoleEndUser, 2, requests, 5)
	require.Len(t, own, 4)
	for _, r := range own {
		assert.Equal(t, uint64(2), r.CreatedByUserID)
	}
	assert.Equal(t, uint64(1), requests[0].ID, "входной срез не переупорядочен")
}

func TestNeedsAttention(t *testing.T) {
	equipment := []entities.Equipment{{ID: 1, HealthPercentage: 90}, {ID: 2, HealthPercentage: 5}, {ID: 3, HealthPercentage: 40}}
	worst := NeedsAttention(equipment, 2)
	require.Len(t, worst, 2)
	assert.Equal(t, uint64(2), worst[0].ID)
	assert.Equal(t, uint64(3), worst[1].ID)
	assert.Equal(t, "Critical", DefaultHealthPolicy().StatusLabel(5))
	assert.Equal(t, "Good", DefaultHealthPolicy().StatusLabel(70))
}
