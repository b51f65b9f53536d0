package entity

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"
)

// Estados de las entidades de referencia con borrado lógico.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Base campos comunes de toda entidad de negocio. OwnerID es la identidad dueña de la fila.
type Base struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta expone la Base embebida; lo promueve cada entidad.
func (b *Base) Meta() *Base { return b }

// Record contrato mínimo que usan los repositorios genéricos y el servicio CRUD.
type Record interface {
	Meta() *Base
	// BusinessDate fecha de negocio (filtros por rango); cero en entidades de referencia.
	BusinessDate() time.Time
	// Attr valor textual de un atributo filtrable por igualdad.
	Attr(name string) (string, bool)
}

// RecordPtr restringe un parámetro de tipo a punteros de entidades.
type RecordPtr[T any] interface {
	*T
	Record
}

// SoftDeletable lo implementan las entidades que se desactivan en lugar de borrarse.
type SoftDeletable interface {
	SetStatus(status string)
	IsActive() bool
}

// Normalizer lo implementan las entidades que completan valores por defecto o derivados
// antes de validarse y persistirse.
type Normalizer interface {
	Normalize()
}

// DateLayout formato de las fechas de negocio en JSON y CSV.
const DateLayout = "2006-01-02"

// Date fecha de negocio sin hora (columna DATE).
type Date struct {
	time.Time
}

// NewDate trunca t al día (UTC).
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate interpreta "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return NewDate(t), nil
}

// String devuelve la fecha como YYYY-MM-DD, o vacío si es cero.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON serializa como "YYYY-MM-DD" (null si es cero).
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON acepta "YYYY-MM-DD", RFC3339 o null.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		d.Time = time.Time{}
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	if t, err := time.Parse(DateLayout, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q", s)
	}
	*d = NewDate(t)
	return nil
}

// Scan implementa sql.Scanner para columnas DATE.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		*d = NewDate(v)
	case string:
		p, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = p
	default:
		return fmt.Errorf("tipo no soportado para fecha: %T", src)
	}
	return nil
}

// Value implementa driver.Valuer; la fecha cero se persiste como NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// ParseDateMust como ParseDate pero entra en pánico; pensado para literales en tests y seeds.
func ParseDateMust(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d.Time
}
