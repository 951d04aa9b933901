package dto

import "github.com/aarondl/null/v8"

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RemoteUserDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Email     null.String `json:"email"`
	Role      string      `json:"role"`
	CompanyID null.Uint64 `json:"company_id"`
}

type AuthResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    RemoteUserDTO `json:"user"`
}

// DashboardStatsDTO - серверные счётчики /dashboard/stats.
type DashboardStatsDTO struct {
	TotalOpenRequests int `json:"total_open_requests"`
	CriticalEquipment int `json:"critical_equipment"`
	OverdueTasks      int `json:"overdue_tasks"`
	MyPendingTasks    int `json:"my_pending_tasks"`
}
