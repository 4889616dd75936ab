// Package store implementa la persistencia de colecciones como documentos JSON
// completos (un documento por colección) sobre un Backend intercambiable.
package store

import "context"

// Backend lee y escribe documentos por nombre.
// Read retorna domain.ErrDocumentNotFound si el documento no existe.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}
