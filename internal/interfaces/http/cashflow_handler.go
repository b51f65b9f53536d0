package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/cashflow"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/archive"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
)

var (
	cashFlowFilters = []string{"transaction_type", "category", "payment_form"}
	cashFlowAliases = map[string]string{"type": "transaction_type"}
)

// CashFlowHandler exportación CSV del caixa. El CRUD se monta con Mount.
type CashFlowHandler struct {
	svc      *cashflow.Service
	archiver *archive.Archiver
	metrics  *metrics.Metrics
}

// NewCashFlowHandler construye el handler; archiver y m pueden ser nil.
func NewCashFlowHandler(svc *cashflow.Service, archiver *archive.Archiver, m *metrics.Metrics) *CashFlowHandler {
	return &CashFlowHandler{svc: svc, archiver: archiver, metrics: m}
}

// Resource CRUD del caixa con ?type= como alias de transaction_type.
func (h *CashFlowHandler) Resource() Resource[entity.CashFlowTransaction] {
	res := CRUDResource(h.svc, cashFlowFilters...)
	res.Aliases = cashFlowAliases
	return res
}

// ExportCSV godoc
// @Summary      Exportar fluxo de caixa
// @Description  Misma lista filtrada que GET /api/cash-flow, en CSV con montos a dos decimales.
// @Tags         cash-flow
// @Security     Bearer
// @Produce      text/csv
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        type     query  string  false  "entrada | saída"
// @Param        charset  query  string  false  "utf-8 | windows-1252"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash-flow/export.csv [get]
func (h *CashFlowHandler) ExportCSV(c *fiber.Ctx) error {
	f, err := listFilter(c, cashFlowFilters, cashFlowAliases)
	if err != nil {
		return writeError(c, err)
	}
	ownerID := GetUserID(c)
	txs, err := h.svc.List(c.UserContext(), ownerID, f)
	if err != nil {
		h.metrics.Export("csv", false)
		return writeError(c, err)
	}

	charset := c.Query("charset", cashflow.CharsetUTF8)
	var buf bytes.Buffer
	w, err := cashflow.EncodeWriter(&buf, charset)
	if err != nil {
		return writeError(c, err)
	}
	if err := cashflow.WriteCSV(w, txs); err != nil {
		h.metrics.Export("csv", false)
		return writeError(c, err)
	}
	if err := w.Close(); err != nil {
		h.metrics.Export("csv", false)
		return writeError(c, err)
	}
	h.metrics.Export("csv", true)

	name := cashflow.ExportFileName(c.Query("from"), c.Query("to"))
	contentType := "text/csv; charset=" + charset
	data := buf.Bytes()
	if key := h.archiver.Save(c.UserContext(), ownerID, name, contentType, data); key != "" {
		c.Set("X-Archive-Key", key)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}
