package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/cajaplus-api/internal/domain"
)

// FileArtifacts guarda binarios generados (PDF, XML de facturas) en un directorio plano.
type FileArtifacts struct {
	dir string
}

// NewFileArtifacts crea el directorio si no existe.
func NewFileArtifacts(dir string) (*FileArtifacts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: crear directorio %s: %w", dir, err)
	}
	return &FileArtifacts{dir: dir}, nil
}

// Save escribe el archivo de forma atómica.
func (a *FileArtifacts) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(a.dir, filepath.Base(name)), data); err != nil {
		return fmt.Errorf("store: guardar %s: %w", name, err)
	}
	return nil
}

// Open lee el archivo. domain.ErrDocumentNotFound si no existe.
func (a *FileArtifacts) Open(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(a.dir, filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: abrir %s: %w", name, err)
	}
	return data, nil
}

// MemoryArtifacts variante en memoria.
type MemoryArtifacts struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryArtifacts() *MemoryArtifacts {
	return &MemoryArtifacts{files: make(map[string][]byte)}
}

func (a *MemoryArtifacts) Save(_ context.Context, name string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.files[name] = append([]byte(nil), data...)
	return nil
}

func (a *MemoryArtifacts) Open(_ context.Context, name string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.files[name]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return append([]byte(nil), data...), nil
}
