package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

var _ repository.Store[entity.Purchase] = (*PurchaseStore)(nil)

// PurchaseStore compras con sus líneas (purchase_items). Las escrituras de cabecera y líneas
// van en una misma transacción.
type PurchaseStore struct {
	pool      *pgxpool.Pool
	tx        *TxRunner
	purchases *Table[entity.Purchase, *entity.Purchase]
}

// NewPurchaseStore construye el repositorio de compras.
func NewPurchaseStore(pool *pgxpool.Pool, tx *TxRunner) *PurchaseStore {
	return &PurchaseStore{pool: pool, tx: tx, purchases: NewTable[entity.Purchase](pool, purchaseMapping)}
}

func (s *PurchaseStore) Insert(ctx context.Context, p *entity.Purchase) error {
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		if err := s.purchases.With(tx).Insert(ctx, p); err != nil {
			return err
		}
		return insertItems(ctx, tx, p.Items)
	})
}

func (s *PurchaseStore) GetByID(ctx context.Context, ownerID, id string) (*entity.Purchase, error) {
	p, err := s.purchases.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.items(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Items = items[p.ID]
	return p, nil
}

func (s *PurchaseStore) List(ctx context.Context, ownerID string, f repository.ListFilter) ([]entity.Purchase, error) {
	list, err := s.purchases.List(ctx, ownerID, f)
	if err != nil || len(list) == 0 {
		return list, err
	}
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	items, err := s.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Items = items[list[i].ID]
	}
	return list, nil
}

// Update reescribe la cabecera y reemplaza todas las líneas.
func (s *PurchaseStore) Update(ctx context.Context, p *entity.Purchase) error {
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		if err := s.purchases.With(tx).Update(ctx, p); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, p.ID); err != nil {
			return fmt.Errorf("delete purchase_items: %w", err)
		}
		return insertItems(ctx, tx, p.Items)
	})
}

// Delete borra la compra; las líneas caen por ON DELETE CASCADE.
func (s *PurchaseStore) Delete(ctx context.Context, ownerID, id string) error {
	return s.purchases.Delete(ctx, ownerID, id)
}

func insertItems(ctx context.Context, tx pgx.Tx, items []entity.PurchaseItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO purchase_items (id, purchase_id, ingredient_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.PurchaseID, it.IngredientID, it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return mapWriteErr("insert purchase_items", err)
		}
	}
	return nil
}

func (s *PurchaseStore) items(ctx context.Context, purchaseIDs []string) (map[string][]entity.PurchaseItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, purchase_id, ingredient_id, quantity, unit_price, total_price
		FROM purchase_items WHERE purchase_id = ANY($1) ORDER BY id`, purchaseIDs)
	if err != nil {
		return nil, fmt.Errorf("list purchase_items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.PurchaseItem, len(purchaseIDs))
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.IngredientID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan purchase_items: %w", err)
		}
		out[it.PurchaseID] = append(out[it.PurchaseID], it)
	}
	return out, rows.Err()
}
