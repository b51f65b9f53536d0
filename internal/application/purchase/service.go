// Package purchase gestiona las compras de insumos con sus líneas y la saída derivada en caixa.
package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/confeitaria-api/internal/application/cashflow"
	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// Purchases CRUD genérico de compras (el store persiste las líneas en la misma transacción).
type Purchases = crud.Service[entity.Purchase, *entity.Purchase]

// Service compras con nombres de proveedor y categoría embebidos.
type Service struct {
	purchases   *Purchases
	suppliers   repository.Store[entity.Supplier]
	categories  repository.Store[entity.Category]
	ingredients repository.Store[entity.Ingredient]
	linker      *cashflow.Linker
}

// NewService construye el servicio.
func NewService(
	purchases *Purchases,
	suppliers repository.Store[entity.Supplier],
	categories repository.Store[entity.Category],
	ingredients repository.Store[entity.Ingredient],
	linker *cashflow.Linker,
) *Service {
	return &Service{purchases: purchases, suppliers: suppliers, categories: categories, ingredients: ingredients, linker: linker}
}

// List compras del dueño, más recientes primero.
func (s *Service) List(ctx context.Context, ownerID string, f repository.ListFilter) ([]entity.Purchase, error) {
	list, err := s.purchases.List(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	names, err := s.lookups(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		names.fill(&list[i])
	}
	return list, nil
}

// Get compra con sus líneas.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*entity.Purchase, error) {
	p, err := s.purchases.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	s.fillOne(ctx, ownerID, p)
	return p, nil
}

// Create persiste la compra y sus líneas y registra la saída en caixa por el total.
func (s *Service) Create(ctx context.Context, ownerID string, p *entity.Purchase) (*entity.Purchase, error) {
	if err := s.checkRefs(ctx, ownerID, p); err != nil {
		return nil, err
	}
	created, err := s.purchases.Create(ctx, ownerID, p)
	if err != nil {
		return nil, err
	}
	s.fillOne(ctx, ownerID, created)
	s.linker.RecordPurchase(ctx, ownerID, created, created.SupplierName)
	return created, nil
}

// Update aplica el patch; si trae purchase_items las líneas se reemplazan y el total se recalcula.
// La saída ya registrada en caixa no se ajusta.
func (s *Service) Update(ctx context.Context, ownerID, id string, patch json.RawMessage) (*entity.Purchase, error) {
	var incoming entity.Purchase
	if err := json.Unmarshal(patch, &incoming); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.checkRefs(ctx, ownerID, &incoming); err != nil {
		return nil, err
	}
	_, after, err := s.purchases.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	after.SupplierName, after.CategoryName = "", ""
	s.fillOne(ctx, ownerID, after)
	return after, nil
}

// Delete borra la compra (las líneas caen en cascada) y, best-effort, su saída en caixa.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	prior, err := s.purchases.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	s.linker.RemovePurchase(ctx, ownerID, prior)
	return nil
}

func (s *Service) checkRefs(ctx context.Context, ownerID string, p *entity.Purchase) error {
	if p.SupplierID != nil && *p.SupplierID != "" {
		if err := exists(ctx, s.suppliers, ownerID, *p.SupplierID, "supplier_id"); err != nil {
			return err
		}
	}
	if p.CategoryID != nil && *p.CategoryID != "" {
		if err := exists(ctx, s.categories, ownerID, *p.CategoryID, "category_id"); err != nil {
			return err
		}
	}
	for _, it := range p.Items {
		if it.IngredientID == "" {
			continue
		}
		if err := exists(ctx, s.ingredients, ownerID, it.IngredientID, "ingredient_id"); err != nil {
			return err
		}
	}
	return nil
}

func exists[T any](ctx context.Context, store repository.Store[T], ownerID, id, field string) error {
	if _, err := store.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s %s no existe", domain.ErrInvalidInput, field, id)
		}
		return err
	}
	return nil
}

type nameIndex struct {
	suppliers  map[string]string
	categories map[string]string
}

func (n nameIndex) fill(p *entity.Purchase) {
	if p.SupplierName == "" && p.SupplierID != nil {
		p.SupplierName = n.suppliers[*p.SupplierID]
	}
	if p.CategoryName == "" && p.CategoryID != nil {
		p.CategoryName = n.categories[*p.CategoryID]
	}
}

func (s *Service) lookups(ctx context.Context, ownerID string) (nameIndex, error) {
	idx := nameIndex{suppliers: map[string]string{}, categories: map[string]string{}}
	sups, err := s.suppliers.List(ctx, ownerID, repository.ListFilter{IncludeInactive: true})
	if err != nil {
		return idx, fmt.Errorf("compras: proveedores: %w", err)
	}
	for _, sp := range sups {
		idx.suppliers[sp.ID] = sp.Name
	}
	cats, err := s.categories.List(ctx, ownerID, repository.ListFilter{})
	if err != nil {
		return idx, fmt.Errorf("compras: categorías: %w", err)
	}
	for _, c := range cats {
		idx.categories[c.ID] = c.Name
	}
	return idx, nil
}

func (s *Service) fillOne(ctx context.Context, ownerID string, p *entity.Purchase) {
	if p.SupplierName == "" && p.SupplierID != nil && *p.SupplierID != "" {
		if sp, err := s.suppliers.GetByID(ctx, ownerID, *p.SupplierID); err == nil {
			p.SupplierName = sp.Name
		}
	}
	if p.CategoryName == "" && p.CategoryID != nil && *p.CategoryID != "" {
		if c, err := s.categories.GetByID(ctx, ownerID, *p.CategoryID); err == nil {
			p.CategoryName = c.Name
		}
	}
}
