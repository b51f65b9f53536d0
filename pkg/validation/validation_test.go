package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/pkg/validation"
)

func TestStruct_CashFlowValido(t *testing.T) {
	tx := entity.CashFlowTransaction{
		TransactionDate: entity.NewDate(entity.ParseDateMust("2026-03-01")),
		TransactionType: entity.CashInflow,
		Description:     "Venda bolo",
		Amount:          decimal.NewFromInt(50),
	}
	assert.NoError(t, validation.Struct(&tx))
}

func TestStruct_FechaCeroYTipoInvalido(t *testing.T) {
	tx := entity.CashFlowTransaction{
		TransactionType: "transferencia",
		Description:     "x",
		Amount:          decimal.NewFromInt(1),
	}
	err := validation.Struct(&tx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "transaction_date es requerido")
	assert.Contains(t, err.Error(), "transaction_type")
}

func TestStruct_MontoNegativo(t *testing.T) {
	tx := entity.CashFlowTransaction{
		TransactionDate: entity.NewDate(entity.ParseDateMust("2026-03-01")),
		TransactionType: entity.CashOutflow,
		Description:     "x",
		Amount:          decimal.NewFromInt(-3),
	}
	err := validation.Struct(&tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestStruct_ItemsDeCompra(t *testing.T) {
	p := entity.Purchase{
		PurchaseDate: entity.NewDate(entity.ParseDateMust("2026-03-01")),
		Items:        []entity.PurchaseItem{{IngredientID: "", Quantity: decimal.NewFromInt(1)}},
	}
	err := validation.Struct(&p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingredient_id es requerido")
}
