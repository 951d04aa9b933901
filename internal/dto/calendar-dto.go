package dto

type CalendarQueryDTO struct {
	Month string `query:"month" validate:"required,ym_month"`
	Date  string `query:"date" validate:"omitempty,ymd_date"`
}

type ScheduleDTO struct {
	Subject         string  `json:"subject" validate:"required"`
	Description     *string `json:"description,omitempty"`
	MaintenanceType string  `json:"maintenanceType" validate:"omitempty,maintenance_type"`
	EquipmentID     uint64  `json:"equipmentId"`
	Priority        string  `json:"priority" validate:"omitempty,priority"`
	ScheduledDate   string  `json:"scheduledDate" validate:"required,ymd_date"`
}

type CalendarDayDTO struct {
	Date     string       `json:"date"`
	Day      int          `json:"day"`
	Count    int          `json:"count"`
	Requests []RequestDTO `json:"requests"`
}

type CalendarDTO struct {
	Month        string           `json:"month"`
	Days         []CalendarDayDTO `json:"days"`
	SelectedDate string           `json:"selectedDate,omitempty"`
	Selected     []RequestDTO     `json:"selected,omitempty"`
}
