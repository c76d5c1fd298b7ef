// Package api implements the HTTP surface of the marketplace: Google
// sign-in with application session issuance, profile management, and
// listing CRUD with owner-only mutation.
package api

import (
	"errors"
	"time"

	"github.com/nats-io/nats.go"

	"bitsbay/internal/auth"
	"bitsbay/internal/metrics"
	"bitsbay/internal/store"
	gos3 "bitsbay/pkg/s3"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

const (
	presignURLExpiry = 15 * time.Minute

	listingCreatedTopic = "bitsbay.listings.created"
	listingUpdatedTopic = "bitsbay.listings.updated"
	listingDeletedTopic = "bitsbay.listings.deleted"
)

// Store holds external dependencies required by the API layer. S3 and Bus
// are optional; the endpoints relying on them degrade when absent.
type Store struct {
	Users    store.Users
	Listings store.Listings
	Sessions store.Sessions
	S3       *gos3.Client
	Bus      *nats.Conn
}

// Config controls runtime behaviour for the API handlers.
type Config struct {
	AllowedOrigins []string
	MediaBucket    string
}

// API wires dependencies and configuration for the HTTP handlers.
type API struct {
	store   *Store
	config  Config
	tokens  *auth.Issuer
	google  auth.IDTokenVerifier
	metrics *metrics.Collector
}

// New initialises the API layer.
func New(st *Store, tokens *auth.Issuer, google auth.IDTokenVerifier, collector *metrics.Collector, cfg Config) (*API, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	if st.Users == nil || st.Listings == nil || st.Sessions == nil {
		return nil, errors.New("store users, listings, and sessions are required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	if google == nil {
		return nil, errors.New("ID token verifier is required")
	}
	if collector == nil {
		collector = metrics.NewCollector(nil)
	}

	return &API{
		store:   st,
		config:  cfg,
		tokens:  tokens,
		google:  google,
		metrics: collector,
	}, nil
}
