package http

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

const maxListLimit = 500

// Resource operaciones de una entidad expuestas como CRUD REST. Deactivate es opcional
// (solo entidades de referencia con borrado lógico).
type Resource[T any] struct {
	Filters    []string          // atributos aceptados como ?clave=valor
	Aliases    map[string]string // nombre de query → atributo
	List       func(ctx context.Context, ownerID string, f repository.ListFilter) ([]T, error)
	Get        func(ctx context.Context, ownerID, id string) (*T, error)
	Create     func(ctx context.Context, ownerID string, rec *T) (*T, error)
	Update     func(ctx context.Context, ownerID, id string, patch json.RawMessage) (*T, error)
	Delete     func(ctx context.Context, ownerID, id string) error
	Deactivate func(ctx context.Context, ownerID, id string) (*T, error)
}

// CRUDResource adapta un crud.Service. Deactivate se habilita si la entidad es SoftDeletable.
func CRUDResource[T any, P entity.RecordPtr[T]](s *crud.Service[T, P], filters ...string) Resource[T] {
	res := Resource[T]{
		Filters: filters,
		List:    s.List,
		Get:     s.Get,
		Create:  s.Create,
		Update: func(ctx context.Context, ownerID, id string, patch json.RawMessage) (*T, error) {
			_, after, err := s.Update(ctx, ownerID, id, patch)
			return after, err
		},
		Delete: func(ctx context.Context, ownerID, id string) error {
			_, err := s.Delete(ctx, ownerID, id)
			return err
		},
	}
	if _, ok := any(P(new(T))).(entity.SoftDeletable); ok {
		res.Deactivate = s.Deactivate
	}
	return res
}

// Mount registra las rutas del recurso en r:
//
//	GET / · GET /:id · POST / · PUT|PATCH /:id · DELETE /:id · POST /:id/deactivate
func Mount[T any](r fiber.Router, res Resource[T]) {
	h := &resourceHandler[T]{res: res}
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/:id", h.get)
	r.Put("/:id", h.update)
	r.Patch("/:id", h.update)
	r.Delete("/:id", h.delete)
	if res.Deactivate != nil {
		r.Post("/:id/deactivate", h.deactivate)
	}
}

type resourceHandler[T any] struct {
	res Resource[T]
}

func (h *resourceHandler[T]) list(c *fiber.Ctx) error {
	f, err := listFilter(c, h.res.Filters, h.res.Aliases)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.res.List(c.UserContext(), GetUserID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

func (h *resourceHandler[T]) get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.res.Get(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *resourceHandler[T]) create(c *fiber.Ctx) error {
	var in T
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return badBody(c)
	}
	out, err := h.res.Create(c.UserContext(), GetUserID(c), &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *resourceHandler[T]) update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	body := c.Body()
	if !json.Valid(body) {
		return badBody(c)
	}
	// Body() pertenece al buffer de fasthttp; se copia antes de pasarlo al caso de uso
	patch := append(json.RawMessage(nil), body...)
	out, err := h.res.Update(c.UserContext(), GetUserID(c), id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *resourceHandler[T]) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.res.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *resourceHandler[T]) deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.res.Deactivate(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// listFilter interpreta from, to (YYYY-MM-DD, inclusive), include_inactive, limit y los
// filtros de igualdad permitidos por el recurso. Las claves fuera de la lista se ignoran.
func listFilter(c *fiber.Ctx, allowed []string, aliases map[string]string) (repository.ListFilter, error) {
	var f repository.ListFilter
	var err error
	if f.From, err = queryDate(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryDate(c, "to"); err != nil {
		return f, err
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	f.IncludeInactive = c.QueryBool("include_inactive", false)
	f.Limit = c.QueryInt("limit", 0)
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	set := func(k, v string) {
		if f.Equals == nil {
			f.Equals = make(map[string]string)
		}
		f.Equals[k] = v
	}
	for _, k := range allowed {
		if v := c.Query(k); v != "" {
			set(k, v)
		}
	}
	for q, k := range aliases {
		if v := c.Query(q); v != "" {
			set(k, v)
		}
	}
	return f, nil
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return &d.Time, nil
}
