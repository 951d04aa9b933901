package dto

import "github.com/aarondl/null/v8"

type TeamDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	CompanyID null.Uint64 `json:"company_id"`
	CreatedAt null.String `json:"created_at"`
}

func (t TeamDTO) GetID() uint64 { return t.ID }

type TeamPayload struct {
	Name      *string `json:"name,omitempty"`
	CompanyID *uint64 `json:"company_id,omitempty"`
}

// StageDTO - /stages отдаёт только id, name, sequence; флаги закрытия опциональны.
type StageDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Sequence  null.Int    `json:"sequence"`
	IsClosed  null.Bool   `json:"is_closed"`
	IsScrap   null.Bool   `json:"is_scrap"`
	CompanyID null.Uint64 `json:"company_id"`
}

func (s StageDTO) GetID() uint64 { return s.ID }

// CreatedResponse - ответ на POST: {"message": "...", "id": N}.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      uint64 `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
