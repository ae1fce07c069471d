package controllers

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/services"
	"context"
	"net/http"
)

type followingResponse struct {
	ID        models.ID `json:"id"`
	Following bool      `json:"following"`
}

type countResponse struct {
	ID    models.ID `json:"id"`
	Count int       `json:"count"`
}

type SocialController struct {
	logger providers.Logger
	graph  services.SocialGraphServiceInterface
}

func NewSocialController(logger providers.Logger, graph services.SocialGraphServiceInterface) *SocialController {
	return &SocialController{
		logger: logger,
		graph:  graph,
	}
}

func (sc *SocialController) Follow(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if err := sc.graph.Follow(r.Context(), id); err != nil {
		writeError(w, r, sc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, followingResponse{ID: id, Following: true})
}

func (sc *SocialController) Unfollow(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if err := sc.graph.Unfollow(r.Context(), id); err != nil {
		writeError(w, r, sc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, followingResponse{ID: id, Following: false})
}

// Following answers a membership check when id is given and lists the
// signed-in user's followees otherwise.
func (sc *SocialController) Following(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if id == "" {
		writeJSON(w, http.StatusOK, sc.graph.Following())
		return
	}
	writeJSON(w, http.StatusOK, followingResponse{ID: id, Following: sc.graph.IsFollowing(id)})
}

func (sc *SocialController) Followers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sc.graph.Followers())
}

func (sc *SocialController) CountFollowers(w http.ResponseWriter, r *http.Request) {
	sc.count(w, r, sc.graph.CountFollowers)
}

func (sc *SocialController) CountFollowing(w http.ResponseWriter, r *http.Request) {
	sc.count(w, r, sc.graph.CountFollowing)
}

func (sc *SocialController) count(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id models.ID) (int, error)) {
	id := queryID(r, "id")
	if id == "" {
		writeError(w, r, sc.logger, services.ErrInvalidTarget)
		return
	}
	n, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, r, sc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{ID: id, Count: n})
}
