package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/cajaplus-api/internal/domain"
)

var _ Backend = (*FileBackend)(nil)

// FileBackend guarda cada documento en {dir}/{name}.json.
// Escribe a un .tmp y renombra; antes de sobrescribir copia el contenido previo a .bak.
type FileBackend struct {
	dir string
}

// NewFileBackend crea el directorio de datos si no existe.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: crear directorio %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

// Path ruta del archivo de un documento.
func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

// Read lee el documento completo.
func (b *FileBackend) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: leer %s: %w", name, err)
	}
	return data, nil
}

// Write reemplaza el documento de forma atómica.
func (b *FileBackend) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := b.Path(name)

	prev, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := writeAtomic(path+".bak", prev); err != nil {
			return fmt.Errorf("store: respaldo %s: %w", name, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("store: leer %s: %w", name, err)
	}

	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("store: escribir %s: %w", name, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
