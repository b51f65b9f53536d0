package entity

import "time"

// Client cliente de encomendas.
type Client struct {
	Base
	Name         string `json:"name" validate:"required,max=200"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address"`
	Observations string `json:"observations"`
}

func (c *Client) BusinessDate() time.Time { return time.Time{} }

func (c *Client) Attr(name string) (string, bool) {
	if name == "email" {
		return c.Email, true
	}
	return "", false
}
