package dto

import (
	"github.com/aarondl/null/v8"
)

// MoveDTO - итог перетаскивания. destinationStageId: null - перетаскивание отменено.
type MoveDTO struct {
	RequestID          uint64      `json:"requestId" validate:"required,gt=0"`
	DestinationStageID null.Uint64 `json:"destinationStageId" validate:"omitempty,gt=0"`
}

type MoveResultDTO struct {
	Moved   bool        `json:"moved"`
	Request *RequestDTO `json:"request,omitempty"`
}

type ColumnDTO struct {
	StageID  uint64       `json:"stageId"`
	Name     string       `json:"name"`
	Sequence int          `json:"sequence"`
	IsClosed bool         `json:"isClosed"`
	Count    int          `json:"count"`
	Requests []RequestDTO `json:"requests"`
}

type BoardDTO struct {
	Columns       []ColumnDTO `json:"columns"`
	OrphanedCount int         `json:"orphanedCount"`
}
