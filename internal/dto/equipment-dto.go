package dto

type CreateEquipmentDTO struct {
	Name              string  `json:"name" validate:"required"`
	SerialNumber      *string `json:"serialNumber,omitempty"`
	CategoryID        uint64  `json:"categoryId" validate:"omitempty,gt=0"`
	MaintenanceTeamID *uint64 `json:"maintenanceTeamId,omitempty" validate:"omitempty,gt=0"`
	TechnicianUserID  *uint64 `json:"technicianUserId,omitempty" validate:"omitempty,gt=0"`
	HealthPercentage  *int    `json:"healthPercentage,omitempty" validate:"omitempty,min=0,max=100"`
	Location          *string `json:"location,omitempty"`
}

type UpdateEquipmentDTO struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1"`
	SerialNumber      *string `json:"serialNumber,omitempty"`
	CategoryID        *uint64 `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	MaintenanceTeamID *uint64 `json:"maintenanceTeamId,omitempty" validate:"omitempty,gt=0"`
	TechnicianUserID  *uint64 `json:"technicianUserId,omitempty" validate:"omitempty,gt=0"`
	HealthPercentage  *int    `json:"healthPercentage,omitempty" validate:"omitempty,min=0,max=100"`
	Location          *string `json:"location,omitempty"`
}

type EquipmentFilterDTO struct {
	Filter string `query:"filter" validate:"omitempty,oneof=all critical healthy"`
}

// EquipmentDTO - строка таблицы оборудования с уже посчитанной раскраской.
type EquipmentDTO struct {
	ID                uint64  `json:"id"`
	Name              string  `json:"name"`
	SerialNumber      *string `json:"serialNumber,omitempty"`
	CategoryID        uint64  `json:"categoryId"`
	CategoryName      string  `json:"categoryName"`
	MaintenanceTeamID *uint64 `json:"maintenanceTeamId,omitempty"`
	TeamName          string  `json:"teamName"`
	TechnicianUserID  *uint64 `json:"technicianUserId,omitempty"`
	CompanyID         uint64  `json:"companyId"`
	HealthPercentage  int     `json:"healthPercentage"`
	HealthBucket      string  `json:"healthBucket"`
	HealthLabel       string  `json:"healthLabel"`
	BarColor          string  `json:"barColor"`
	Location          *string `json:"location,omitempty"`
	Unsynced          bool    `json:"unsynced"`
}

type EquipmentListDTO struct {
	Filter string         `json:"filter"`
	Total  int            `json:"total"`
	List   []EquipmentDTO `json:"list"`
}

type ImportRowErrorDTO struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResultDTO struct {
	Created int                 `json:"created"`
	Skipped int                 `json:"skipped"`
	Errors  []ImportRowErrorDTO `json:"errors"`
}
