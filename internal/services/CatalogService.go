package services

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/storage"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
)

// CatalogService is the artwork directory. Newest uploads come first.
type CatalogService struct {
	mu       sync.RWMutex
	state    StateWriter
	logger   providers.Logger
	artworks []models.Artwork
	now      func() time.Time
}

func (s *CatalogService) Load(ctx context.Context) error {
	var artworks []models.Artwork
	if _, err := storage.GetJSON(ctx, s.state, models.KeyArtworks, &artworks); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to load artworks: %s", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artworks = artworks
	s.logger.Infof(providers.TypeApp, "Loaded %d artworks", len(artworks))
	return nil
}

func (s *CatalogService) Upload(_ context.Context, artwork models.Artwork) (*models.Artwork, error) {
	artwork.ArtistID = models.NormalizeID(string(artwork.ArtistID))
	v := validate.Struct(&artwork)
	if !v.Validate() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.Errors.One())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	artwork.ID = models.NormalizeID(string(artwork.ID))
	if artwork.ID == "" {
		artwork.ID = models.ID(uuid.NewString())
	}
	if indexOfArtwork(s.artworks, artwork.ID) >= 0 {
		return nil, fmt.Errorf("%w: artwork %s already exists", ErrInvalidInput, artwork.ID)
	}
	if artwork.CreatedAt.IsZero() {
		artwork.CreatedAt = s.now().UTC()
	}

	updated := append([]models.Artwork{*artwork.Clone()}, cloneArtworks(s.artworks)...)
	m, err := storage.PutJSON(models.KeyArtworks, updated)
	if err != nil {
		return nil, err
	}
	s.state.Schedule(m)
	s.artworks = updated
	return artwork.Clone(), nil
}

func (s *CatalogService) List() []models.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneArtworks(s.artworks)
}

func (s *CatalogService) Get(id models.ID) (*models.Artwork, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := indexOfArtwork(s.artworks, models.NormalizeID(string(id)))
	if idx < 0 {
		return nil, false
	}
	return s.artworks[idx].Clone(), true
}

// FindByArtistID returns the first listed artwork by the given artist.
func (s *CatalogService) FindByArtistID(id models.ID) (*models.Artwork, bool) {
	id = models.NormalizeID(string(id))
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := slices.IndexFunc(s.artworks, func(a models.Artwork) bool { return a.ArtistID == id })
	if idx < 0 {
		return nil, false
	}
	return s.artworks[idx].Clone(), true
}

func NewCatalogService(state StateWriter, logger providers.Logger) CatalogServiceInterface {
	return &CatalogService{
		state:  state,
		logger: logger,
		now:    time.Now,
	}
}
