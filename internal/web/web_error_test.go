package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hexmatch-go/internal/model"
)

func TestUnknownGameShowsNotFoundPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Not found")
	assertContainsText(t, doc, ".message", "That game does not exist or was abandoned.")
	assertContainsElement(t, doc, `a[href="/"]`)
}

func TestUnknownRouteShowsNotFoundPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".message", "/nowhere")
}

func TestUnknownLevelRedirectsHomeWithError(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/games", url.Values{"mode": {"maze"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Unknown level")
}

func TestPlacementErrorsShowFlash(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"non-numeric cell", url.Values{"x": {"abc"}, "y": {"0"}}, "Invalid cell"},
		{"missing cell", url.Values{}, "Invalid cell"},
		{"off the board", cellForm(9, 9), "You can't place a piece there"},
		{"void cell", cellForm(0, 0), "You can't place a piece there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.createGame("game-1", model.LevelHexagon)

			rr := ts.post("/games/game-1/place", tt.form)
			require.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/games/game-1", rr.Header().Get("Location"))

			doc := parseHTML(ts.followRedirect(rr).Body)
			assertContainsText(t, doc, ".flash-error", tt.message)
			assertContainsText(t, doc, "#score", "0")
		})
	}
}

func TestOccupiedCellShowsFlash(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game-1", model.LevelWelcome)
	ts.post("/games/game-1/place", cellForm(3, 3))

	rr := ts.post("/games/game-1/place", cellForm(3, 3))
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "You can't place a piece there")
	assertContainsText(t, doc, "#turn", "1")
}

func TestCollectErrorsShowFlash(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game-1", model.LevelWelcome)
	ts.post("/games/game-1/place", cellForm(3, 3))

	rr := ts.post("/games/game-1/collect", cellForm(1, 1))
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "There is no piece there")

	rr = ts.post("/games/game-1/collect", cellForm(3, 3))
	doc = parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "That piece can't be collected yet")
}

func TestAbandonUnknownGameRedirectsHome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/games/missing/abandon", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "That game no longer exists")
}
