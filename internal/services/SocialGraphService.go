package services

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/storage"
	"context"
	"fmt"
	"slices"
	"sync"
)

// SocialGraphService keeps the signed-in user's following and followers
// lists. Each edge lives in two keys, following_<follower> and
// followers_<followee>, which are always written together in one batch.
type SocialGraphService struct {
	mu        sync.RWMutex
	state     StateWriter
	logger    providers.Logger
	userID    models.ID
	following []models.ID
	followers []models.ID
}

func (s *SocialGraphService) Bind(ctx context.Context, userID models.ID) error {
	var following, followers []models.ID
	if _, err := storage.GetJSON(ctx, s.state, models.FollowingKey(userID), &following); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to load following list of %s: %s", userID, err)
	}
	if _, err := storage.GetJSON(ctx, s.state, models.FollowersKey(userID), &followers); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to load followers list of %s: %s", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.following = following
	s.followers = followers
	return nil
}

func (s *SocialGraphService) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.following = nil
	s.followers = nil
}

// Follow is a no-op when the edge already exists.
func (s *SocialGraphService) Follow(ctx context.Context, targetID models.ID) error {
	target := models.NormalizeID(string(targetID))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTargetLocked(target); err != nil {
		return err
	}
	if slices.Contains(s.following, target) {
		return nil
	}

	theirFollowers, err := s.readList(ctx, models.FollowersKey(target))
	if err != nil {
		return err
	}
	following := append(slices.Clone(s.following), target)
	if !slices.Contains(theirFollowers, s.userID) {
		theirFollowers = append(theirFollowers, s.userID)
	}

	if err := s.scheduleEdge(following, target, theirFollowers); err != nil {
		return err
	}
	s.following = following
	return nil
}

func (s *SocialGraphService) Unfollow(ctx context.Context, targetID models.ID) error {
	target := models.NormalizeID(string(targetID))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTargetLocked(target); err != nil {
		return err
	}
	if !slices.Contains(s.following, target) {
		return nil
	}

	theirFollowers, err := s.readList(ctx, models.FollowersKey(target))
	if err != nil {
		return err
	}
	following := slices.DeleteFunc(slices.Clone(s.following), func(id models.ID) bool { return id == target })
	me := s.userID
	theirFollowers = slices.DeleteFunc(theirFollowers, func(id models.ID) bool { return id == me })

	if err := s.scheduleEdge(following, target, theirFollowers); err != nil {
		return err
	}
	s.following = following
	return nil
}

func (s *SocialGraphService) IsFollowing(id models.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.following, models.NormalizeID(string(id)))
}

func (s *SocialGraphService) Following() []models.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.following)
}

func (s *SocialGraphService) Followers() []models.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.followers)
}

// CountFollowers reads any user's followers list from storage, 0 when absent.
func (s *SocialGraphService) CountFollowers(ctx context.Context, id models.ID) (int, error) {
	list, err := s.readList(ctx, models.FollowersKey(models.NormalizeID(string(id))))
	return len(list), err
}

func (s *SocialGraphService) CountFollowing(ctx context.Context, id models.ID) (int, error) {
	list, err := s.readList(ctx, models.FollowingKey(models.NormalizeID(string(id))))
	return len(list), err
}

// Reset clears the signed-in user's own lists. Other users' lists that
// mention this user are left as they are.
func (s *SocialGraphService) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoSession
	}
	s.following = nil
	s.followers = nil
	s.state.Schedule(storage.Del(models.FollowingKey(s.userID)), storage.Del(models.FollowersKey(s.userID)))
	return nil
}

func (s *SocialGraphService) checkTargetLocked(target models.ID) error {
	if s.userID == "" {
		return ErrNoSession
	}
	if target == "" || target == s.userID {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return nil
}

func (s *SocialGraphService) scheduleEdge(following []models.ID, target models.ID, theirFollowers []models.ID) error {
	followingMut, err := storage.PutJSON(models.FollowingKey(s.userID), following)
	if err != nil {
		return err
	}
	followersMut, err := storage.PutJSON(models.FollowersKey(target), theirFollowers)
	if err != nil {
		return err
	}
	s.state.Schedule(followingMut, followersMut)
	return nil
}

func (s *SocialGraphService) readList(ctx context.Context, key string) ([]models.ID, error) {
	var ids []models.ID
	if _, err := storage.GetJSON(ctx, s.state, key, &ids); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to read %s: %s", key, err)
		return nil, err
	}
	return ids, nil
}

func NewSocialGraphService(state StateWriter, logger providers.Logger) SocialGraphServiceInterface {
	return &SocialGraphService{
		state:  state,
		logger: logger,
	}
}
