package services

import (
	"artfolio/internal/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, env *testEnv) *CatalogService {
	t.Helper()
	c := NewCatalogService(env.persister, env.logger).(*CatalogService)
	c.now = fixedClock(epoch)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestCatalogService_UploadPrependsAndPersists(t *testing.T) {
	env := newTestEnv(t)
	c := newCatalog(t, env)
	ctx := context.Background()

	first, err := c.Upload(ctx, models.Artwork{Title: "Dusk", ArtistID: "2"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := c.Upload(ctx, models.Artwork{Title: "Dawn", ArtistID: "3"})
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	reloaded := newCatalog(t, env)
	assert.Equal(t, list, reloaded.List())
}

func TestCatalogService_UploadValidation(t *testing.T) {
	env := newTestEnv(t)
	c := newCatalog(t, env)
	ctx := context.Background()

	_, err := c.Upload(ctx, models.Artwork{ArtistID: "2"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Upload(ctx, models.Artwork{Title: "Dusk"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Upload(ctx, models.Artwork{ID: "a1", Title: "Dusk", ArtistID: "2"})
	require.NoError(t, err)
	_, err = c.Upload(ctx, models.Artwork{ID: "a1", Title: "Again", ArtistID: "2"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalogService_Lookups(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, models.KeyArtworks, []models.Artwork{
		{ID: "a2", Title: "Newer", ArtistID: "7", ArtistName: "Noor"},
		{ID: "a1", Title: "Older", ArtistID: "7", ArtistName: "Noor"},
	})
	c := newCatalog(t, env)

	a, ok := c.Get(" a1 ")
	require.True(t, ok)
	assert.Equal(t, "Older", a.Title)

	_, ok = c.Get("zz")
	assert.False(t, ok)

	byArtist, ok := c.FindByArtistID("7")
	require.True(t, ok)
	assert.Equal(t, models.ID("a2"), byArtist.ID)

	_, ok = c.FindByArtistID("8")
	assert.False(t, ok)
}
