package services

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/storage"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"golang.org/x/crypto/bcrypt"
)

type registration struct {
	Username string `validate:"required|maxLen:40"`
	Password string `validate:"required"`
}

type IdentityService struct {
	mu       sync.RWMutex
	state    StateWriter
	logger   providers.Logger
	session  *models.User
	hashCost int
	now      func() time.Time
}

func (s *IdentityService) CurrentUser() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, false
	}
	return s.session.Clone(), true
}

func (s *IdentityService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}
	var cred *models.Credential
	for i := range creds {
		if creds[i].Username == username {
			cred = &creds[i]
			break
		}
	}
	if cred == nil || bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, ErrAuthentication
	}

	profiles, err := s.profiles(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := findUser(profiles, cred.UserID)
	if !ok {
		s.logger.Errorf(providers.TypeApp, "Credential for %s references missing profile %s", username, cred.UserID)
		return nil, fmt.Errorf("%w: %s", ErrDataIntegrity, cred.UserID)
	}

	s.startSessionLocked(user)
	return user.Clone(), nil
}

func (s *IdentityService) Register(ctx context.Context, profile models.User, password string) (*models.User, error) {
	profile.Username = strings.TrimSpace(profile.Username)
	v := validate.Struct(&registration{Username: profile.Username, Password: password})
	if !v.Validate() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.Errors.One())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range creds {
		if c.Username == profile.Username {
			return nil, ErrDuplicateUsername
		}
	}
	profiles, err := s.profiles(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile.ID = models.NormalizeID(string(profile.ID))
	if profile.ID == "" {
		profile.ID = models.ID(uuid.NewString())
	}
	if _, taken := findUser(profiles, profile.ID); taken {
		return nil, fmt.Errorf("%w: id %s already registered", ErrInvalidInput, profile.ID)
	}
	if profile.DisplayName == "" {
		profile.DisplayName = profile.Username
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = s.now().UTC()
	}

	creds = append(creds, models.Credential{Username: profile.Username, PasswordHash: string(hash), UserID: profile.ID})
	profiles = append(profiles, profile)

	credMut, err := storage.PutJSON(models.KeyCredentials, creds)
	if err != nil {
		return nil, err
	}
	profMut, err := storage.PutJSON(models.KeyProfiles, profiles)
	if err != nil {
		return nil, err
	}
	s.state.Schedule(credMut, profMut)
	s.logger.Infof(providers.TypeApp, "Registered user %s (%s)", profile.Username, profile.ID)

	s.startSessionLocked(&profile)
	return profile.Clone(), nil
}

// Logout clears the session pointer only; registered credentials and
// profiles are kept.
func (s *IdentityService) Logout(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.state.Schedule(storage.Del(models.KeySessionUser))
}

func (s *IdentityService) Restore(ctx context.Context) error {
	var user models.User
	ok, err := storage.GetJSON(ctx, s.state, models.KeySessionUser, &user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok && user.ID != "" {
		s.session = &user
	} else {
		s.session = nil
	}
	return nil
}

// UpdateProfile replaces the signed-in user's editable fields. Id,
// username and creation time never change.
func (s *IdentityService) UpdateProfile(ctx context.Context, profile models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}
	profiles, err := s.profiles(ctx)
	if err != nil {
		return nil, err
	}

	updated := s.session.Clone()
	updated.DisplayName = profile.DisplayName
	updated.Avatar = profile.Avatar
	updated.Bio = profile.Bio
	updated.ArtStyles = append([]string(nil), profile.ArtStyles...)
	updated.Skills = append([]string(nil), profile.Skills...)

	replaced := false
	for i := range profiles {
		if profiles[i].ID == updated.ID {
			profiles[i] = *updated
			replaced = true
			break
		}
	}
	if !replaced {
		return nil, fmt.Errorf("%w: %s", ErrDataIntegrity, updated.ID)
	}

	profMut, err := storage.PutJSON(models.KeyProfiles, profiles)
	if err != nil {
		return nil, err
	}
	sessMut, err := storage.PutJSON(models.KeySessionUser, updated)
	if err != nil {
		return nil, err
	}
	s.state.Schedule(profMut, sessMut)
	s.session = updated
	return updated.Clone(), nil
}

func (s *IdentityService) FindProfile(ctx context.Context, id models.ID) (*models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles, err := s.profiles(ctx)
	if err != nil {
		return nil, false, err
	}
	u, ok := findUser(profiles, models.NormalizeID(string(id)))
	return u, ok, nil
}

func (s *IdentityService) startSessionLocked(user *models.User) {
	s.session = user.Clone()
	m, err := storage.PutJSON(models.KeySessionUser, s.session)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Unable to encode session for %s: %s", user.ID, err)
		return
	}
	s.state.Schedule(m)
}

func (s *IdentityService) credentials(ctx context.Context) ([]models.Credential, error) {
	var creds []models.Credential
	if _, err := storage.GetJSON(ctx, s.state, models.KeyCredentials, &creds); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to read credentials: %s", err)
		return nil, err
	}
	return creds, nil
}

func (s *IdentityService) profiles(ctx context.Context) ([]models.User, error) {
	var profiles []models.User
	if _, err := storage.GetJSON(ctx, s.state, models.KeyProfiles, &profiles); err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to read profiles: %s", err)
		return nil, err
	}
	return profiles, nil
}

func findUser(users []models.User, id models.ID) (*models.User, bool) {
	for i := range users {
		if users[i].ID == id {
			return users[i].Clone(), true
		}
	}
	return nil, false
}

func NewIdentityService(state StateWriter, logger providers.Logger) IdentityServiceInterface {
	return newIdentityService(state, logger, bcrypt.DefaultCost)
}

func newIdentityService(state StateWriter, logger providers.Logger, cost int) *IdentityService {
	return &IdentityService{
		state:    state,
		logger:   logger,
		hashCost: cost,
		now:      time.Now,
	}
}
