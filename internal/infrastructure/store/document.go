package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/cajaplus-api/internal/domain"
)

// Document colección tipada persistida como un único documento JSON.
// Un mutex por documento serializa Load/Save/Update dentro del proceso.
type Document[T any] struct {
	backend      Backend
	name         string
	empty        func() T
	persistEmpty bool

	mu sync.Mutex
}

// Option ajusta un Document.
type Option func(*documentOptions)

type documentOptions struct {
	persistEmpty bool
}

// PersistOnInit escribe el documento vacío la primera vez que se lee.
func PersistOnInit() Option {
	return func(o *documentOptions) { o.persistEmpty = true }
}

// NewDocument construye la colección. empty devuelve el valor inicial.
func NewDocument[T any](backend Backend, name string, empty func() T, opts ...Option) *Document[T] {
	var o documentOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Document[T]{backend: backend, name: name, empty: empty, persistEmpty: o.persistEmpty}
}

// Load lee el documento. Si no existe devuelve el valor vacío.
// JSON inválido retorna domain.ErrCorruptData: nunca se reinicia la colección.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

// Save sobrescribe el documento completo.
func (d *Document[T]) Save(ctx context.Context, v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(ctx, v)
}

// Update lee, aplica fn y escribe bajo el mismo lock.
// Si fn retorna error el documento no se modifica y el error se propaga tal cual.
func (d *Document[T]) Update(ctx context.Context, fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	return d.write(ctx, v)
}

func (d *Document[T]) load(ctx context.Context) (T, error) {
	var zero T
	raw, err := d.backend.Read(ctx, d.name)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		v := d.empty()
		if d.persistEmpty {
			if err := d.write(ctx, v); err != nil {
				return zero, err
			}
		}
		return v, nil
	}
	if err != nil {
		return zero, err
	}
	v := d.empty()
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("store: %s: %w: %v", d.name, domain.ErrCorruptData, err)
	}
	return v, nil
}

func (d *Document[T]) write(ctx context.Context, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: serializar %s: %w", d.name, err)
	}
	return d.backend.Write(ctx, d.name, data)
}
