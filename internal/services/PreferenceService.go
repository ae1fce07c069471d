package services

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/storage"
	"context"
	"slices"
	"sync"
)

// PreferenceService keeps the signed-in user's liked and saved artworks as
// full snapshots, so they render without a catalog lookup.
type PreferenceService struct {
	mu     sync.RWMutex
	state  StateWriter
	logger providers.Logger
	userID models.ID
	liked  []models.Artwork
	saved  []models.Artwork
}

func (s *PreferenceService) Bind(ctx context.Context, userID models.ID) error {
	var liked, saved []models.Artwork
	if _, err := storage.GetJSON(ctx, s.state, models.LikedKey(userID), &liked); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to load liked artworks of %s: %s", userID, err)
	}
	if _, err := storage.GetJSON(ctx, s.state, models.SavedKey(userID), &saved); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to load saved artworks of %s: %s", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.liked = uniqueArtworks(liked)
	s.saved = uniqueArtworks(saved)
	return nil
}

func (s *PreferenceService) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.liked = nil
	s.saved = nil
}

func (s *PreferenceService) Like(_ context.Context, artwork models.Artwork) error {
	return s.add(&s.liked, models.LikedKey, artwork)
}

func (s *PreferenceService) Unlike(_ context.Context, id models.ID) error {
	return s.remove(&s.liked, models.LikedKey, id)
}

func (s *PreferenceService) Save(_ context.Context, artwork models.Artwork) error {
	return s.add(&s.saved, models.SavedKey, artwork)
}

func (s *PreferenceService) Unsave(_ context.Context, id models.ID) error {
	return s.remove(&s.saved, models.SavedKey, id)
}

func (s *PreferenceService) IsLiked(id models.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOfArtwork(s.liked, models.NormalizeID(string(id))) >= 0
}

func (s *PreferenceService) IsSaved(id models.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOfArtwork(s.saved, models.NormalizeID(string(id))) >= 0
}

func (s *PreferenceService) Liked() []models.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneArtworks(s.liked)
}

func (s *PreferenceService) Saved() []models.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneArtworks(s.saved)
}

func (s *PreferenceService) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoSession
	}
	s.liked = nil
	s.saved = nil
	s.state.Schedule(storage.Del(models.LikedKey(s.userID)), storage.Del(models.SavedKey(s.userID)))
	return nil
}

func (s *PreferenceService) add(list *[]models.Artwork, key func(models.ID) string, artwork models.Artwork) error {
	artwork.ID = models.NormalizeID(string(artwork.ID))
	if artwork.ID == "" {
		return ErrInvalidTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoSession
	}
	if indexOfArtwork(*list, artwork.ID) >= 0 {
		return nil
	}
	updated := append(cloneArtworks(*list), *artwork.Clone())
	return s.persistLocked(list, updated, key(s.userID))
}

func (s *PreferenceService) remove(list *[]models.Artwork, key func(models.ID) string, id models.ID) error {
	id = models.NormalizeID(string(id))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoSession
	}
	idx := indexOfArtwork(*list, id)
	if idx < 0 {
		return nil
	}
	updated := slices.Delete(cloneArtworks(*list), idx, idx+1)
	return s.persistLocked(list, updated, key(s.userID))
}

func (s *PreferenceService) persistLocked(list *[]models.Artwork, updated []models.Artwork, key string) error {
	m, err := storage.PutJSON(key, updated)
	if err != nil {
		return err
	}
	s.state.Schedule(m)
	*list = updated
	return nil
}

func indexOfArtwork(list []models.Artwork, id models.ID) int {
	return slices.IndexFunc(list, func(a models.Artwork) bool { return a.ID == id })
}

func cloneArtworks(list []models.Artwork) []models.Artwork {
	if list == nil {
		return nil
	}
	out := make([]models.Artwork, len(list))
	for i := range list {
		out[i] = *list[i].Clone()
	}
	return out
}

// uniqueArtworks drops repeated ids from a persisted list, keeping the first.
func uniqueArtworks(list []models.Artwork) []models.Artwork {
	seen := make(map[models.ID]struct{}, len(list))
	out := list[:0]
	for _, a := range list {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func NewPreferenceService(state StateWriter, logger providers.Logger) PreferenceServiceInterface {
	return &PreferenceService{
		state:  state,
		logger: logger,
	}
}
