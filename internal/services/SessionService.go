package services

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"context"
)

// SessionService signs users in and out and keeps the per-user stores
// bound to whoever is signed in.
type SessionService struct {
	identity IdentityServiceInterface
	scoped   []UserScoped
	logger   providers.Logger
}

func (s *SessionService) CurrentUser() (*models.User, bool) {
	return s.identity.CurrentUser()
}

func (s *SessionService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.identity.Login(ctx, username, password)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Login failed for %q: %s", username, err)
		return nil, err
	}
	s.bind(ctx, u.ID)
	return u, nil
}

func (s *SessionService) Register(ctx context.Context, profile models.User, password string) (*models.User, error) {
	u, err := s.identity.Register(ctx, profile, password)
	if err != nil {
		return nil, err
	}
	s.bind(ctx, u.ID)
	return u, nil
}

func (s *SessionService) Logout(ctx context.Context) {
	s.identity.Logout(ctx)
	for _, st := range s.scoped {
		st.Unbind()
	}
}

// Restore picks up the session left by the previous run, if any.
func (s *SessionService) Restore(ctx context.Context) error {
	if err := s.identity.Restore(ctx); err != nil {
		return err
	}
	if u, ok := s.identity.CurrentUser(); ok {
		s.bind(ctx, u.ID)
		s.logger.Infof(providers.TypeApp, "Restored session for %s", u.ID)
	}
	return nil
}

func (s *SessionService) bind(ctx context.Context, userID models.ID) {
	for _, st := range s.scoped {
		if err := st.Bind(ctx, userID); err != nil {
			s.logger.Errorf(providers.TypeApp, "Unable to bind %s: %s", userID, err)
		}
	}
}

func NewSessionService(
	identity IdentityServiceInterface,
	graph SocialGraphServiceInterface,
	prefs PreferenceServiceInterface,
	logger providers.Logger,
) SessionServiceInterface {
	return &SessionService{
		identity: identity,
		scoped:   []UserScoped{graph, prefs},
		logger:   logger,
	}
}
