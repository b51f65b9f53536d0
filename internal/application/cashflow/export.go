package cashflow

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// CSVHeader columnas del CSV de caixa.
var CSVHeader = []string{"Data", "Tipo", "Descrição", "Valor", "Forma de Pagamento", "Responsável"}

// WriteCSV escribe la lista ya filtrada (la misma que se muestra), con montos a dos decimales.
func WriteCSV(w io.Writer, txs []entity.CashFlowTransaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, tx := range txs {
		rec := []string{
			tx.TransactionDate.String(),
			tx.TransactionType,
			tx.Description,
			tx.Amount.StringFixed(2),
			tx.PaymentForm,
			tx.Responsible,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: fila %s: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFileName nombre sugerido del archivo, p. ej. fluxo-caixa-2026-03-01_2026-03-31.csv.
func ExportFileName(from, to string) string {
	switch {
	case from != "" && to != "":
		return fmt.Sprintf("fluxo-caixa-%s_%s.csv", from, to)
	case from != "":
		return fmt.Sprintf("fluxo-caixa-desde-%s.csv", from)
	default:
		return "fluxo-caixa.csv"
	}
}

// Charsets de exportación admitidos. windows-1252 es el que abre Excel sin reinterpretar acentos.
const (
	CharsetUTF8    = "utf-8"
	CharsetWindows = "windows-1252"
)

// EncodeWriter envuelve w para escribir en charset. El writer devuelto debe cerrarse para
// volcar el último bloque.
func EncodeWriter(w io.Writer, charset string) (io.WriteCloser, error) {
	switch strings.ToLower(charset) {
	case "", CharsetUTF8:
		return nopCloser{w}, nil
	case CharsetWindows, "latin1", "iso-8859-1":
		return transform.NewWriter(w, charmap.Windows1252.NewEncoder()), nil
	default:
		return nil, fmt.Errorf("%w: charset %q no soportado", domain.ErrInvalidInput, charset)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
