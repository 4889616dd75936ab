package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount monto de entrada: acepta número JSON o string numérico ("12.50").
// La validación (positivo, parseable) la hace el caso de uso.
type Amount struct {
	raw string
	set bool
}

// NewAmount construye un Amount desde texto (tests y llamadas internas).
func NewAmount(s string) Amount { return Amount{raw: s, set: true} }

// UnmarshalJSON implementa json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount{raw: s, set: true}
		return nil
	}
	*a = Amount{raw: string(data), set: true}
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	d, err := a.Decimal()
	if err != nil {
		return json.Marshal(a.raw)
	}
	return []byte(d.String()), nil
}

// IsSet indica si el campo vino en el cuerpo.
func (a Amount) IsSet() bool { return a.set }

// Decimal parsea el monto. Devuelve error si no es numérico.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(a.raw))
}
