package services

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/analytics"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

// AttentionLimit - размер списка "Equipment Requiring Attention".
const AttentionLimit = 10

type ReportServiceInterface interface {
	GetReport(ctx context.Context) dto.ReportDTO
	Export(ctx context.Context, w io.Writer) error
}

type ReportService struct {
	domain repositories.DomainRepositoryInterface
	policy *analytics.HealthPolicy
	logger *zap.Logger
}

func NewReportService(domain repositories.DomainRepositoryInterface, policy *analytics.HealthPolicy, logger *zap.Logger) *ReportService {
	return &ReportService{domain: domain, policy: policy, logger: logger}
}

func (s *ReportService) Policy() *analytics.HealthPolicy { return s.policy }

func (s *ReportService) build(snap entities.Snapshot) dto.ReportDTO {
	critical := 0
	for _, e := range snap.Equipment {
		if s.policy.IsCritical(e.HealthPercentage) {
			critical++
		}
	}

	attention := analytics.NeedsAttention(snap.Equipment, AttentionLimit)
	items := make([]dto.AttentionItemDTO, 0, len(attention))
	for _, e := range attention {
		items = append(items, dto.AttentionItemDTO{
			ID:               e.ID,
			Name:             e.Name,
			HealthPercentage: e.HealthPercentage,
			Status:           s.policy.StatusLabel(e.HealthPercentage),
			BarColor:         string(s.policy.BarColor(e.HealthPercentage)),
		})
	}

	return dto.ReportDTO{
		TotalEquipment:     len(snap.Equipment),
		TotalRequests:      len(snap.Requests),
		CompletionRate:     analytics.CompletionRate(snap),
		AverageHealth:      analytics.AverageHealth(snap.Equipment),
		CriticalEquipment:  critical,
		OverdueRequests:    analytics.CountOverdue(snap, timeNow()),
		ByStage:            analytics.ByStage(snap.Requests, snap.Stages),
		ByPriority:         analytics.ByPriority(snap.Requests),
		ByType:             analytics.ByType(snap.Requests),
		HealthDistribution: s.policy.HealthDistribution(snap.Equipment),
		NeedsAttention:     items,
	}
}

func (s *ReportService) GetReport(ctx context.Context) dto.ReportDTO {
	return s.build(s.domain.Snapshot())
}

var (
	summaryHeaders   = []interface{}{"Показатель", "Значение"}
	shareHeaders     = []interface{}{"Разрез", "Группа", "Количество", "Доля, %"}
	equipmentHeaders = []interface{}{"ID", "Оборудование", "Здоровье, %", "Статус"}
	requestHeaders   = []interface{}{"ID", "Тема", "Тип", "Приоритет", "Стадия", "Плановая дата", "Просрочена", "Создана"}
)

// Export пишет отчёт в xlsx: сводка, распределения, оборудование, заявки.
func (s *ReportService) Export(ctx context.Context, w io.Writer) error {
	snap := s.domain.Snapshot()
	report := s.build(snap)
	today := timeNow()

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("стиль заголовка: %w", err)
	}

	summary := "Сводка"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}
	summaryRows := [][]interface{}{
		summaryHeaders,
		{"Всего оборудования", report.TotalEquipment},
		{"Всего заявок", report.TotalRequests},
		{"Выполнено, %", report.CompletionRate},
		{"Среднее здоровье, %", report.AverageHealth},
		{"Критичное оборудование", report.CriticalEquipment},
		{"Просроченные заявки", report.OverdueRequests},
	}
	if err := writeRows(f, summary, summaryRows, bold); err != nil {
		return err
	}

	shares := [][]interface{}{shareHeaders}
	appendShares := func(kind string, list []analytics.Share) {
		for _, sh := range list {
			shares = append(shares, []interface{}{kind, sh.Label, sh.Count, sh.Percentage})
		}
	}
	appendShares("Стадия", report.ByStage)
	appendShares("Приоритет", report.ByPriority)
	appendShares("Тип", report.ByType)
	appendShares("Здоровье", report.HealthDistribution)
	if err := writeSheet(f, "Распределения", shares, bold); err != nil {
		return err
	}

	equipment := [][]interface{}{equipmentHeaders}
	for _, e := range snap.Equipment {
		equipment = append(equipment, []interface{}{e.ID, e.Name, e.HealthPercentage, s.policy.StatusLabel(e.HealthPercentage)})
	}
	if err := writeSheet(f, "Оборудование", equipment, bold); err != nil {
		return err
	}

	requests := [][]interface{}{requestHeaders}
	for _, r := range snap.Requests {
		view := requestDTO(snap, r, today)
		scheduled := ""
		if r.ScheduledDate != nil {
			scheduled = *r.ScheduledDate
		}
		overdue := "нет"
		if view.Overdue {
			overdue = "да"
		}
		requests = append(requests, []interface{}{
			r.ID, r.Subject, string(r.MaintenanceType), string(r.Priority), view.StageName, scheduled, overdue, r.RequestDate,
		})
	}
	if err := writeSheet(f, "Заявки", requests, bold); err != nil {
		return err
	}
	_ = f.SetColWidth("Заявки", "B", "B", 40)
	_ = f.SetColWidth("Оборудование", "B", "B", 30)
	_ = f.SetColWidth(summary, "A", "A", 28)

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("создание листа %s: %w", sheet, err)
	}
	return writeRows(f, sheet, rows, headerStyle)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("запись строки %d листа %s: %w", i+1, sheet, err)
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	return nil
}
