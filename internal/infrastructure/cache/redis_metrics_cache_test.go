package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/ports"
)

var _ ports.MetricsCache = (*RedisMetricsCache)(nil)

// Sin servidor Redis la caché degrada a "miss" sin propagar errores.
func TestRedisMetricsCache_SinServidorEsMiss(t *testing.T) {
	c := NewRedisMetricsCache("127.0.0.1:1", "", 0, time.Minute, zerolog.Nop())
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	c.Set(ctx, &dto.MetricsDTO{TotalSales: 1})
	m, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, m)
	c.Invalidate(ctx)
}
