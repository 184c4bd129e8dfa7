package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Login struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required"       json:"password"`
}

func (l Login) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "***")
}

func (l Login) MarshalJSON() ([]byte, error) {
	l.Password = "***"
	type L Login
	return json.Marshal(L(l))
}

type Register struct {
	Name     string `validate:"required"        json:"name"`
	Email    string `validate:"required,email"  json:"email"`
	Password string `validate:"required,min=8"  json:"password"`
	Phone    string `validate:"omitempty,e164"  json:"phone"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("name", r.Name)
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R Register
	return json.Marshal(R(r))
}

type Address struct {
	Label      string `validate:"omitempty,max=64" json:"label"`
	Street     string `validate:"required"         json:"street"`
	City       string `validate:"required"         json:"city"`
	PostalCode string `validate:"omitempty,max=16" json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
}

func (a Address) MarshalZerologObject(e *zerolog.Event) {
	e.Str("label", a.Label).Str("city", a.City).Bool("isDefault", a.IsDefault)
}
