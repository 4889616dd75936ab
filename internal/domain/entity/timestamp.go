package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout formato de fecha en los documentos JSON (hora local).
const TimestampLayout = "2006-01-02 15:04:05"

func init() {
	// Los documentos guardan montos como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Timestamp fecha serializada como "YYYY-MM-DD HH:MM:SS".
// Al leer también acepta RFC3339 y fechas sin hora.
type Timestamp struct {
	time.Time
}

// NewTimestamp trunca a segundos, la precisión del formato persistido.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

// Now fecha actual.
func Now() Timestamp { return NewTimestamp(time.Now()) }

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

// MarshalJSON implementa json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implementa json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = Timestamp{Time: parsed}
			return nil
		}
	}
	return fmt.Errorf("fecha: formato no reconocido %q", s)
}
