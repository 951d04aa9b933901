package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

type EquipmentImportServiceInterface interface {
	Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error)
}

type EquipImportService struct {
	domain repositories.DomainRepositoryInterface
	logger *zap.Logger
}

func NewEquipImportService(domain repositories.DomainRepositoryInterface, logger *zap.Logger) *EquipImportService {
	return &EquipImportService{domain: domain, logger: logger}
}

// importColumns - индексы колонок, -1 если колонки нет.
type importColumns struct {
	name, serial, category, team, location, health int
}

func detectColumns(row []string) (importColumns, bool) {
	cols := importColumns{-1, -1, -1, -1, -1, -1}
	for i, cell := range row {
		c := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case strings.Contains(c, "serial"):
			cols.serial = i
		case strings.Contains(c, "category"):
			cols.category = i
		case strings.Contains(c, "team"):
			cols.team = i
		case strings.Contains(c, "location"):
			cols.location = i
		case strings.Contains(c, "health"):
			cols.health = i
		case c == "name" || c == "equipment" || strings.Contains(c, "equipment name"):
			cols.name = i
		}
	}
	return cols, cols.name != -1
}

// Import читает первый лист, где нашлась шапка с колонкой Name.
// Каждая строка создаётся через доменный репозиторий.
func (s *EquipImportService) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("ошибка открытия файла: %v", err)
	}
	defer f.Close()

	var rows [][]string
	var cols importColumns
	headerRow := -1
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for i, row := range sheetRows {
			if c, ok := detectColumns(row); ok {
				rows, cols, headerRow = sheetRows, c, i
				break
			}
		}
		if headerRow != -1 {
			break
		}
	}
	if headerRow == -1 {
		return nil, apperrors.NewInvalidInputError("не найдена шапка таблицы: нужна колонка 'Name'")
	}

	snap := s.domain.Snapshot()
	result := &dto.ImportResultDTO{Errors: []dto.ImportRowErrorDTO{}}

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		name := safeGet(row, cols.name)
		if name == "" || isTrash(name) {
			result.Skipped++
			continue
		}

		e := entities.Equipment{
			Name:             name,
			CategoryID:       defaultCategID,
			CompanyID:        defaultCompanyID,
			HealthPercentage: defaultHealth,
		}
		if v := safeGet(row, cols.serial); v != "" {
			e.SerialNumber = &v
		}
		if v := safeGet(row, cols.location); v != "" {
			e.Location = &v
		}
		if id := findCategory(snap.Categories, safeGet(row, cols.category)); id != 0 {
			e.CategoryID = id
		}
		if id := findTeam(snap.Teams, safeGet(row, cols.team)); id != 0 {
			e.MaintenanceTeamID = &id
		}
		if v := strings.TrimSuffix(safeGet(row, cols.health), "%"); v != "" {
			h, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || h < 0 || h > 100 {
				result.Errors = append(result.Errors, dto.ImportRowErrorDTO{
					Row:     lineNum,
					Message: fmt.Sprintf("некорректное здоровье '%s'", v),
				})
				continue
			}
			e.HealthPercentage = h
		}

		if _, err := s.domain.AddEquipment(ctx, e); err != nil {
			// 401 прерывает импорт целиком
			return result, err
		}
		result.Created++
	}

	s.logger.Info("Импорт оборудования завершён",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func safeGet(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isTrash - итоговые строки таблицы.
func isTrash(val string) bool {
	v := strings.ToLower(val)
	return strings.HasPrefix(v, "total") || strings.HasPrefix(v, "итого")
}

func findCategory(categories []entities.EquipmentCategory, name string) uint64 {
	for _, c := range categories {
		if name != "" && strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}
	return 0
}

func findTeam(teams []entities.MaintenanceTeam, name string) uint64 {
	for _, t := range teams {
		if name != "" && strings.EqualFold(t.Name, name) {
			return t.ID
		}
	}
	return 0
}
