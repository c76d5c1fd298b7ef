package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"bitsbay/internal/auth"
	"bitsbay/internal/metrics"
	"bitsbay/internal/models"
)

type testAPI struct {
	api      *API
	router   http.Handler
	issuer   *auth.Issuer
	users    *fakeUsers
	listings *fakeListings
	sessions *fakeSessions
	verifier *fakeVerifier
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	issuer, err := auth.NewIssuer([]byte("test-signing-key"), 15*time.Minute, 168*time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}

	users := newFakeUsers()
	listings := newFakeListings(users)
	sessions := newFakeSessions()
	verifier := &fakeVerifier{}

	app, err := New(
		&Store{Users: users, Listings: listings, Sessions: sessions},
		issuer,
		verifier,
		metrics.NewCollector(prometheus.NewRegistry()),
		Config{},
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	return &testAPI{
		api:      app,
		router:   app.Routes(),
		issuer:   issuer,
		users:    users,
		listings: listings,
		sessions: sessions,
		verifier: verifier,
	}
}

func (ta *testAPI) seedUser(t *testing.T, email, firstName, lastName string, phone *string) *models.User {
	t.Helper()
	user := &models.User{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
	}
	if err := ta.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (ta *testAPI) seedListing(t *testing.T, seller *models.User, title string, mutate func(*models.Listing)) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		SellerID:    seller.ID,
		Title:       title,
		Description: "a well loved copy",
		Status:      models.ListingStatusAvailable,
		CreatedAt:   time.Now().UTC(),
	}
	if mutate != nil {
		mutate(listing)
	}
	if err := ta.listings.Create(context.Background(), listing); err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return listing
}

func (ta *testAPI) accessToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	pair, err := ta.issuer.IssuePair(userID)
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}
	return pair.Access
}

// do runs a JSON request through the full router and decodes the response
// body into a generic map.
func (ta *testAPI) do(t *testing.T, method, target, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ta.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, decoded
}

func strptr(s string) *string { return &s }
