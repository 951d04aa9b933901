package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetReport(ctx echo.Context) error {
	data := c.reportService.GetReport(ctx.Request().Context())
	return utils.SuccessResponse(ctx, data, "Отчет успешно сформирован", http.StatusOK)
}

func (c *ReportController) ExportReport(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := c.reportService.Export(ctx.Request().Context(), &buf); err != nil {
		c.logger.Error("ExportReport: не удалось сформировать файл", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("gearguard_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
