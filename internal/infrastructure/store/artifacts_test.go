package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/domain"
)

func TestFileArtifacts_GuardarYAbrir(t *testing.T) {
	ctx := context.Background()
	a, err := NewFileArtifacts(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, a.Save(ctx, "FAC-2024-01-001.pdf", []byte("%PDF-1.3")))
	data, err := a.Open(ctx, "FAC-2024-01-001.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	_, err = a.Open(ctx, "FAC-2024-01-002.pdf")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestMemoryArtifacts_NoExiste(t *testing.T) {
	a := NewMemoryArtifacts()
	_, err := a.Open(context.Background(), "x.pdf")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
