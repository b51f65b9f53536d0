// Package production gestiona las órdenes de produção y dispara la entrada en caixa
// cuando una orden pasa a entregue.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/confeitaria-api/internal/application/cashflow"
	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/report"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// Orders CRUD genérico de órdenes.
type Orders = crud.Service[entity.ProductionOrder, *entity.ProductionOrder]

// Service órdenes de produção con nombre de cliente embebido en lectura.
type Service struct {
	orders  *Orders
	clients repository.Store[entity.Client]
	linker  *cashflow.Linker
	log     *logger.Logger
}

// NewService construye el servicio.
func NewService(orders *Orders, clients repository.Store[entity.Client], linker *cashflow.Linker, log *logger.Logger) *Service {
	return &Service{orders: orders, clients: clients, linker: linker, log: log}
}

// List órdenes del dueño con client_name.
func (s *Service) List(ctx context.Context, ownerID string, f repository.ListFilter) ([]entity.ProductionOrder, error) {
	list, err := s.orders.List(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	names := s.clientNames(ctx, ownerID)
	for i := range list {
		if list[i].ClientID != nil {
			list[i].ClientName = names[*list[i].ClientID]
		}
	}
	return list, nil
}

// Get orden por id.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*entity.ProductionOrder, error) {
	o, err := s.orders.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	o.ClientName = s.clientName(ctx, ownerID, o.ClientID)
	return o, nil
}

// Create crea la orden; si nace entregue con valor positivo registra la venta.
func (s *Service) Create(ctx context.Context, ownerID string, o *entity.ProductionOrder) (*entity.ProductionOrder, error) {
	if err := s.checkClient(ctx, ownerID, o.ClientID); err != nil {
		return nil, err
	}
	created, err := s.orders.Create(ctx, ownerID, o)
	if err != nil {
		return nil, err
	}
	created.ClientName = s.clientName(ctx, ownerID, created.ClientID)
	if cashflow.ShouldRecordSale(nil, created) {
		s.linker.RecordSale(ctx, ownerID, created, created.ClientName)
	}
	return created, nil
}

// Update aplica el patch; la venta se registra solo en la transición a entregue.
func (s *Service) Update(ctx context.Context, ownerID, id string, patch json.RawMessage) (*entity.ProductionOrder, error) {
	var incoming struct {
		ClientID *string `json:"client_id"`
	}
	if err := json.Unmarshal(patch, &incoming); err == nil && incoming.ClientID != nil {
		if err := s.checkClient(ctx, ownerID, incoming.ClientID); err != nil {
			return nil, err
		}
	}
	before, after, err := s.orders.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	after.ClientName = s.clientName(ctx, ownerID, after.ClientID)
	if cashflow.ShouldRecordSale(before, after) {
		s.linker.RecordSale(ctx, ownerID, after, after.ClientName)
	}
	return after, nil
}

// Delete borra la orden. La venta ya registrada en caixa se conserva.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	_, err := s.orders.Delete(ctx, ownerID, id)
	return err
}

// ClientStats indicadores del cliente a partir de sus órdenes.
func (s *Service) ClientStats(ctx context.Context, ownerID, clientID string) (report.ClientStats, error) {
	if _, err := s.clients.GetByID(ctx, ownerID, clientID); err != nil {
		return report.ClientStats{}, err
	}
	list, err := s.orders.List(ctx, ownerID, repository.ListFilter{Equals: map[string]string{"client_id": clientID}})
	if err != nil {
		return report.ClientStats{}, err
	}
	return report.StatsForClient(list), nil
}

// TopClients ranking de clientes por valor y por cantidad de órdenes.
func (s *Service) TopClients(ctx context.Context, ownerID string, limit int) (byRevenue []report.Total, byOrders []report.Count, err error) {
	list, err := s.List(ctx, ownerID, repository.ListFilter{})
	if err != nil {
		return nil, nil, err
	}
	return report.TopN(report.ByClientRevenue(list), limit), report.TopNCount(report.ByClientOrders(list), limit), nil
}

func (s *Service) checkClient(ctx context.Context, ownerID string, clientID *string) error {
	if clientID == nil || *clientID == "" {
		return nil
	}
	if _, err := s.clients.GetByID(ctx, ownerID, *clientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: client_id %s no existe", domain.ErrInvalidInput, *clientID)
		}
		return err
	}
	return nil
}

func (s *Service) clientName(ctx context.Context, ownerID string, clientID *string) string {
	if clientID == nil || *clientID == "" {
		return ""
	}
	c, err := s.clients.GetByID(ctx, ownerID, *clientID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Str("client_id", *clientID).Msg("produção: no se pudo leer el cliente")
		}
		return ""
	}
	return c.Name
}

func (s *Service) clientNames(ctx context.Context, ownerID string) map[string]string {
	clients, err := s.clients.List(ctx, ownerID, repository.ListFilter{})
	if err != nil {
		s.log.Warn().Err(err).Msg("produção: no se pudo leer los clientes")
		return nil
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names
}
