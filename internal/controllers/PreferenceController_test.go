package controllers

import (
	"artfolio/internal/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceController_LikeUnlike(t *testing.T) {
	f := newFixture(t)
	f.bind(t, "u1")
	pc := NewPreferenceController(f.logger, f.prefs)

	body := `{"id":"a1","title":"Dusk","artistId":"2"}`
	rr := call(pc.Like, http.MethodPost, "/like", body)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = call(pc.Like, http.MethodPost, "/like", body)
	assert.Len(t, decode[[]models.Artwork](t, rr), 1)

	rr = call(pc.Liked, http.MethodGet, "/liked", "")
	assert.Len(t, decode[[]models.Artwork](t, rr), 1)

	rr = call(pc.Unlike, http.MethodPost, "/unlike?id=a1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestPreferenceController_SaveUnsave(t *testing.T) {
	f := newFixture(t)
	f.bind(t, "u1")
	pc := NewPreferenceController(f.logger, f.prefs)

	rr := call(pc.Save, http.MethodPost, "/save", `{"id":"a1","title":"Dusk"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.prefs.IsSaved("a1"))

	rr = call(pc.Saved, http.MethodGet, "/saved", "")
	assert.Len(t, decode[[]models.Artwork](t, rr), 1)

	rr = call(pc.Unsave, http.MethodPost, "/unsave?id=a1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, f.prefs.IsSaved("a1"))
}

func TestPreferenceController_Errors(t *testing.T) {
	f := newFixture(t)
	pc := NewPreferenceController(f.logger, f.prefs)

	assert.Equal(t, http.StatusUnauthorized, call(pc.Like, http.MethodPost, "/like", `{"id":"a1"}`).Code)
	f.bind(t, "u1")
	assert.Equal(t, http.StatusBadRequest, call(pc.Like, http.MethodPost, "/like", `{"id":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(pc.Like, http.MethodPost, "/like", `[`).Code)
}
