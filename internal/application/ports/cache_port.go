package ports

import (
	"context"
	"sync/atomic"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
)

// MetricsCache define el puerto de salida para cachear la proyección de métricas.
// Cualquier adaptador (Redis, memoria, noop) debe implementar esta interfaz.
// Las escrituras de ventas, caja y pagos llaman Invalidate; un fallo de caché
// nunca debe impedir la operación de negocio.
type MetricsCache interface {
	Get(ctx context.Context) (*dto.MetricsDTO, bool)
	Set(ctx context.Context, m *dto.MetricsDTO)
	Invalidate(ctx context.Context)
}

// NoopCache implementación vacía, usada cuando no hay Redis configurado.
type NoopCache struct{}

func (NoopCache) Get(context.Context) (*dto.MetricsDTO, bool) { return nil, false }
func (NoopCache) Set(context.Context, *dto.MetricsDTO)         {}
func (NoopCache) Invalidate(context.Context)                   {}

// Generational caché que descarta proyecciones calculadas antes de la última invalidación.
type Generational interface {
	Generation() uint64
	SetIfCurrent(ctx context.Context, m *dto.MetricsDTO, gen uint64) bool
}

var _ Generational = (*VersionedCache)(nil)

// VersionedCache envuelve una MetricsCache y numera las invalidaciones.
// Debe ser la misma instancia para lectores y escritores del proceso.
type VersionedCache struct {
	MetricsCache
	gen atomic.Uint64
}

// NewVersionedCache envuelve c (nil = NoopCache).
func NewVersionedCache(c MetricsCache) *VersionedCache {
	if c == nil {
		c = NoopCache{}
	}
	return &VersionedCache{MetricsCache: c}
}

// Invalidate incrementa la generación antes de borrar la entrada.
func (c *VersionedCache) Invalidate(ctx context.Context) {
	c.gen.Add(1)
	c.MetricsCache.Invalidate(ctx)
}

// Generation número de invalidaciones hasta ahora.
func (c *VersionedCache) Generation() uint64 { return c.gen.Load() }

// SetIfCurrent guarda m solo si no hubo invalidaciones desde gen.
// Si una invalidación llega durante el Set, la entrada se borra de nuevo.
func (c *VersionedCache) SetIfCurrent(ctx context.Context, m *dto.MetricsDTO, gen uint64) bool {
	if c.gen.Load() != gen {
		return false
	}
	c.MetricsCache.Set(ctx, m)
	if c.gen.Load() != gen {
		c.MetricsCache.Invalidate(ctx)
		return false
	}
	return true
}
