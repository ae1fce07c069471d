package controllers

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/services"
	"context"
	"net/http"
)

type PreferenceController struct {
	logger providers.Logger
	prefs  services.PreferenceServiceInterface
}

func NewPreferenceController(logger providers.Logger, prefs services.PreferenceServiceInterface) *PreferenceController {
	return &PreferenceController{
		logger: logger,
		prefs:  prefs,
	}
}

func (pc *PreferenceController) Like(w http.ResponseWriter, r *http.Request) {
	pc.add(w, r, pc.prefs.Like, pc.prefs.Liked)
}

func (pc *PreferenceController) Unlike(w http.ResponseWriter, r *http.Request) {
	pc.remove(w, r, pc.prefs.Unlike, pc.prefs.Liked)
}

func (pc *PreferenceController) Save(w http.ResponseWriter, r *http.Request) {
	pc.add(w, r, pc.prefs.Save, pc.prefs.Saved)
}

func (pc *PreferenceController) Unsave(w http.ResponseWriter, r *http.Request) {
	pc.remove(w, r, pc.prefs.Unsave, pc.prefs.Saved)
}

func (pc *PreferenceController) Liked(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(pc.prefs.Liked()))
}

func (pc *PreferenceController) Saved(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(pc.prefs.Saved()))
}

func (pc *PreferenceController) add(w http.ResponseWriter, r *http.Request, fn func(context.Context, models.Artwork) error, list func() []models.Artwork) {
	var artwork models.Artwork
	if !decodeBody(w, r, &artwork) {
		return
	}
	if err := fn(r.Context(), artwork); err != nil {
		writeError(w, r, pc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list()))
}

func (pc *PreferenceController) remove(w http.ResponseWriter, r *http.Request, fn func(context.Context, models.ID) error, list func() []models.Artwork) {
	if err := fn(r.Context(), queryID(r, "id")); err != nil {
		writeError(w, r, pc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list()))
}

func nonNil(list []models.Artwork) []models.Artwork {
	if list == nil {
		return []models.Artwork{}
	}
	return list
}
