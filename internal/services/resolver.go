package services

import (
	"artfolio/internal/models"
	"context"
)

// Resolution is the outcome of a counterparty lookup: either Found or
// NotFound, never both.
type Resolution interface {
	isResolution()
}

type Found struct {
	User models.User
}

type NotFound struct {
	ID models.ID
}

func (Found) isResolution()    {}
func (NotFound) isResolution() {}

type CounterpartyResolver interface {
	Resolve(ctx context.Context, id models.ID) (Resolution, error)
}

type profileFinder interface {
	FindProfile(ctx context.Context, id models.ID) (*models.User, bool, error)
}

type artistFinder interface {
	FindByArtistID(id models.ID) (*models.Artwork, bool)
}

// ProfileResolver resolves registered users.
type ProfileResolver struct {
	profiles profileFinder
}

func (r *ProfileResolver) Resolve(ctx context.Context, id models.ID) (Resolution, error) {
	u, ok, err := r.profiles.FindProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NotFound{ID: id}, nil
	}
	return Found{User: *u}, nil
}

// CatalogResolver builds a minimal profile from the artist fields of the
// first catalog artwork by that artist.
type CatalogResolver struct {
	catalog artistFinder
}

func (r *CatalogResolver) Resolve(_ context.Context, id models.ID) (Resolution, error) {
	a, ok := r.catalog.FindByArtistID(id)
	if !ok {
		return NotFound{ID: id}, nil
	}
	return Found{User: models.User{
		ID:          id,
		Username:    a.ArtistName,
		DisplayName: a.ArtistName,
		Avatar:      a.ArtistAvatar,
	}}, nil
}

// ChainResolver returns the first Found in order. Errors stop the chain.
type ChainResolver []CounterpartyResolver

func (c ChainResolver) Resolve(ctx context.Context, id models.ID) (Resolution, error) {
	for _, r := range c {
		res, err := r.Resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, ok := res.(Found); ok {
			return res, nil
		}
	}
	return NotFound{ID: id}, nil
}

func NewCounterpartyResolver(identity IdentityServiceInterface, catalog CatalogServiceInterface) CounterpartyResolver {
	return ChainResolver{
		&ProfileResolver{profiles: identity},
		&CatalogResolver{catalog: catalog},
	}
}
