package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/confeitaria-api/internal/application/analytics"
	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/archive"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
)

// ReportRenderer genera el PDF del reporte mensual; lo implementa *pdf.ReportGenerator.
type ReportRenderer interface {
	MonthlyReportPDF(ctx context.Context, rep *dto.MonthlyReportDTO, owner string) ([]byte, error)
}

// DashboardHandler maneja el dashboard y los reportes mensuales.
type DashboardHandler struct {
	uc       *appanalytics.DashboardUseCase
	pdf      ReportRenderer
	archiver *archive.Archiver
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewDashboardHandler construye el handler; pdf, archiver y m pueden ser nil.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, pdf ReportRenderer, archiver *archive.Archiver, m *metrics.Metrics) *DashboardHandler {
	return &DashboardHandler{uc: uc, pdf: pdf, archiver: archiver, metrics: m, now: time.Now}
}

// GetSummary devuelve los KPIs del mes en curso.
// GET /api/dashboard/summary
//
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Monthly godoc
// @Summary      Reporte mensual
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Año (por defecto el actual)"
// @Param        month  query  int  false  "Mes 1-12 (por defecto el actual)"
// @Success      200    {object}  dto.MonthlyReportDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *DashboardHandler) Monthly(c *fiber.Ctx) error {
	year, month := h.period(c)
	rep, err := h.uc.MonthlyReport(c.UserContext(), GetUserID(c), year, month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// MonthlyPDF mismo reporte renderizado como PDF. GET /api/reports/monthly.pdf
func (h *DashboardHandler) MonthlyPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: "generación de PDF no configurada"})
	}
	year, month := h.period(c)
	ctx, ownerID := c.UserContext(), GetUserID(c)
	rep, err := h.uc.MonthlyReport(ctx, ownerID, year, month)
	if err != nil {
		return writeError(c, err)
	}
	owner := ownerID
	if sess := GetSession(c); sess != nil && sess.Profile != nil && sess.Profile.FullName != "" {
		owner = sess.Profile.FullName
	}
	data, err := h.pdf.MonthlyReportPDF(ctx, rep, owner)
	h.metrics.Export("pdf", err == nil)
	if err != nil {
		return writeError(c, err)
	}

	name := fmt.Sprintf("relatorio-%04d-%02d.pdf", year, month)
	if key := h.archiver.Save(ctx, ownerID, name, "application/pdf", data); key != "" {
		c.Set("X-Archive-Key", key)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

// period lee ?year=&month=; los ausentes toman el mes en curso. La validación de rango
// la hace el caso de uso.
func (h *DashboardHandler) period(c *fiber.Ctx) (int, int) {
	now := h.now()
	return c.QueryInt("year", now.Year()), c.QueryInt("month", int(now.Month()))
}
