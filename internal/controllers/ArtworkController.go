package controllers

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/services"
	"net/http"

	json "github.com/goccy/go-json"
)

const artworkListCacheKey = "http:artworks"

type ArtworkController struct {
	logger  providers.Logger
	catalog services.CatalogServiceInterface
	cache   providers.CacheProviderInterface
}

func NewArtworkController(logger providers.Logger, catalog services.CatalogServiceInterface, cache providers.CacheProviderInterface) *ArtworkController {
	return &ArtworkController{
		logger:  logger,
		catalog: catalog,
		cache:   cache,
	}
}

func (ac *ArtworkController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ArtworkController) List(w http.ResponseWriter, _ *http.Request) {
	ac.serveFromCacheOrCompute(w, artworkListCacheKey, func() (any, error) {
		return nonNil(ac.catalog.List()), nil
	})
}

func (ac *ArtworkController) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := ac.catalog.Get(queryID(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "artwork not found"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (ac *ArtworkController) Upload(w http.ResponseWriter, r *http.Request) {
	var artwork models.Artwork
	if !decodeBody(w, r, &artwork) {
		return
	}
	created, err := ac.catalog.Upload(r.Context(), artwork)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	ac.cache.Del(artworkListCacheKey)
	writeJSON(w, http.StatusCreated, created)
}
