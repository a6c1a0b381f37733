package controller

import (
	"encoding/json"
	"fmt"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/event"
	"house-auction-api/internal/repo"
	"house-auction-api/internal/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentNotifier struct{}

func (silentNotifier) NotifyAuctionWon(listingId int64, winner string, amount int64) {}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	bus := event.NewBus(8)
	t.Cleanup(bus.Close)

	services := service.NewServices(service.Deps{
		Repos:    repo.NewMemoryRepositories(),
		Admins:   []string{"admin"},
		Bus:      bus,
		Notifier: silentNotifier{},
	})

	handler := echo.New()
	SetupRoutesHandlers(handler, services)

	return handler
}

func doRequest(t *testing.T, handler *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func createListingRequest(t *testing.T, handler *echo.Echo, caller string) entity.ListingOutputModel {
	t.Helper()

	body := fmt.Sprintf(`{"title":"Villa","description":"By the sea","startPrice":100,"caller":"%s"}`, caller)
	rec := doRequest(t, handler, http.MethodPost, "/api/listings/new", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var listing entity.ListingOutputModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))

	return listing
}

func TestPostListing_Unauthorized(t *testing.T) {
	handler := newTestServer(t)

	body := `{"title":"Villa","description":"By the sea","startPrice":100,"caller":"stranger"}`
	rec := doRequest(t, handler, http.MethodPost, "/api/listings/new", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/listings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPostListing_ValidationErrors(t *testing.T) {
	handler := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"description":"d","startPrice":1,"caller":"admin"}`},
		{"missing caller", `{"title":"t","description":"d","startPrice":1}`},
		{"negative price", `{"title":"t","description":"d","startPrice":-5,"caller":"admin"}`},
		{"malformed json", `{"title":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/listings/new", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetListing_BadAndUnknownId(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/listings/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/listings/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuctionFlowOverHTTP(t *testing.T) {
	handler := newTestServer(t)
	listing := createListingRequest(t, handler, "admin")
	base := fmt.Sprintf("/api/listings/%d", listing.Id)

	// Bidding before the auction starts is a lifecycle conflict.
	rec := doRequest(t, handler, http.MethodPost, base+"/bids/new", `{"bidder":"alice","amount":150}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, base+"/leader", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, base+"/active?caller=admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, handler, http.MethodPut, base+"/start?caller=admin", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, base+"/bids/new", `{"bidder":"alice","amount":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, base+"/bids/new", `{"bidder":"alice","amount":150}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var bid entity.BidOutputModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bid))
	assert.Equal(t, 1, bid.Sequence)

	rec = doRequest(t, handler, http.MethodGet, base+"/leader", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var leader entity.Leader
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leader))
	assert.Equal(t, entity.Leader{Bidder: "alice", Amount: 150}, leader)

	// A listing with bids can no longer be removed.
	rec = doRequest(t, handler, http.MethodDelete, base+"?caller=admin", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, base+"/end?caller=admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ended entity.ListingOutputModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ended))
	assert.True(t, ended.IsEnded)

	rec = doRequest(t, handler, http.MethodPost, base+"/bids/new", `{"bidder":"bob","amount":500}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, base+"/bids", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var bids []entity.BidOutputModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bids))
	require.Len(t, bids, 1)
	assert.Equal(t, "alice", bids[0].Bidder)
}

func TestDeleteListing_RequiresCaller(t *testing.T) {
	handler := newTestServer(t)
	listing := createListingRequest(t, handler, "admin")
	base := fmt.Sprintf("/api/listings/%d", listing.Id)

	rec := doRequest(t, handler, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, handler, http.MethodDelete, base+"?caller=admin", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditListing_UpdatesFields(t *testing.T) {
	handler := newTestServer(t)
	listing := createListingRequest(t, handler, "admin")
	base := fmt.Sprintf("/api/listings/%d", listing.Id)

	body := `{"title":"Renovated","description":"New roof","startPrice":250,"caller":"admin"}`
	rec := doRequest(t, handler, http.MethodPatch, base+"/edit", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated entity.ListingOutputModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renovated", updated.Title)
	assert.Equal(t, int64(250), updated.StartPrice)
}

func TestPing(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
