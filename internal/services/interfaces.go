package services

import (
	"artfolio/internal/models"
	"artfolio/internal/storage"
	"context"
)

// StateWriter is the persistence side of every store: reads see scheduled
// but unwritten values, writes are queued and applied in order.
type StateWriter interface {
	storage.Reader
	Schedule(muts ...storage.Mutation)
}

type CurrentUserProvider interface {
	CurrentUser() (*models.User, bool)
}

type IdentityServiceInterface interface {
	CurrentUserProvider
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, profile models.User, password string) (*models.User, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) error
	UpdateProfile(ctx context.Context, profile models.User) (*models.User, error)
	FindProfile(ctx context.Context, id models.ID) (*models.User, bool, error)
}

// UserScoped is implemented by stores whose keys carry the signed-in user id.
type UserScoped interface {
	Bind(ctx context.Context, userID models.ID) error
	Unbind()
}

type SocialGraphServiceInterface interface {
	UserScoped
	Follow(ctx context.Context, targetID models.ID) error
	Unfollow(ctx context.Context, targetID models.ID) error
	IsFollowing(id models.ID) bool
	Following() []models.ID
	Followers() []models.ID
	CountFollowers(ctx context.Context, id models.ID) (int, error)
	CountFollowing(ctx context.Context, id models.ID) (int, error)
	Reset(ctx context.Context) error
}

type PreferenceServiceInterface interface {
	UserScoped
	Like(ctx context.Context, artwork models.Artwork) error
	Unlike(ctx context.Context, id models.ID) error
	Save(ctx context.Context, artwork models.Artwork) error
	Unsave(ctx context.Context, id models.ID) error
	IsLiked(id models.ID) bool
	IsSaved(id models.ID) bool
	Liked() []models.Artwork
	Saved() []models.Artwork
	Reset(ctx context.Context) error
}

type CatalogServiceInterface interface {
	Load(ctx context.Context) error
	Upload(ctx context.Context, artwork models.Artwork) (*models.Artwork, error)
	List() []models.Artwork
	Get(id models.ID) (*models.Artwork, bool)
	FindByArtistID(id models.ID) (*models.Artwork, bool)
}

type ConversationServiceInterface interface {
	Load(ctx context.Context) error
	Threads() []models.MessageThread
	GetThreadByCounterparty(id models.ID) (*models.MessageThread, bool)
	HasThread(id models.ID) bool
	SendMessage(ctx context.Context, counterpartyID models.ID, draft Draft) error
	ShareArtwork(ctx context.Context, counterpartyID models.ID, artwork models.Artwork) error
	MarkThreadRead(ctx context.Context, threadID models.ID) error
	Deduplicate(ctx context.Context)
	ResetAll(ctx context.Context)
}

type SessionServiceInterface interface {
	CurrentUserProvider
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, profile models.User, password string) (*models.User, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) error
}
