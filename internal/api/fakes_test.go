package api

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"bitsbay/internal/auth"
	"bitsbay/internal/models"
	"bitsbay/internal/store"
)

type fakeUsers struct {
	byID map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUsers) UpdatePhoneNumber(_ context.Context, id uuid.UUID, phone *string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.PhoneNumber = phone
	copied := *u
	return &copied, nil
}

type fakeListings struct {
	users *fakeUsers
	byID  map[uuid.UUID]*models.Listing
}

func newFakeListings(users *fakeUsers) *fakeListings {
	return &fakeListings{users: users, byID: make(map[uuid.UUID]*models.Listing)}
}

func (f *fakeListings) withSeller(l models.Listing) models.Listing {
	if seller, ok := f.users.byID[l.SellerID]; ok {
		l.Seller = *seller
	}
	return l
}

func (f *fakeListings) Create(_ context.Context, listing *models.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}
	listing.UpdatedAt = listing.CreatedAt
	copied := *listing
	f.byID[listing.ID] = &copied
	*listing = f.withSeller(copied)
	return nil
}

func (f *fakeListings) GetByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	resolved := f.withSeller(*l)
	return &resolved, nil
}

func (f *fakeListings) Update(_ context.Context, id uuid.UUID, updates map[string]any) (*models.Listing, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for col, v := range updates {
		switch col {
		case "title":
			l.Title = v.(string)
		case "description":
			l.Description = v.(string)
		case "price":
			price := v.(int)
			l.Price = &price
		case "tags":
			l.Tags = v.(string)
		case "negotiable":
			l.Negotiable = v.(bool)
		case "year":
			year := v.(string)
			l.Year = &year
		case "status":
			l.Status = v.(string)
		}
	}
	l.UpdatedAt = time.Now().UTC()
	resolved := f.withSeller(*l)
	return &resolved, nil
}

func (f *fakeListings) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeListings) List(_ context.Context, page, pageSize int) (store.ListingPage, error) {
	return f.page(nil, page, pageSize)
}

func (f *fakeListings) ListBySeller(_ context.Context, sellerID uuid.UUID, page, pageSize int) (store.ListingPage, error) {
	return f.page(&sellerID, page, pageSize)
}

func (f *fakeListings) page(sellerID *uuid.UUID, page, pageSize int) (store.ListingPage, error) {
	all := make([]models.Listing, 0, len(f.byID))
	for _, l := range f.byID {
		if sellerID != nil && l.SellerID != *sellerID {
			continue
		}
		all = append(all, f.withSeller(*l))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return store.ListingPage{Items: []models.Listing{}, Total: total}, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return store.ListingPage{Items: all[start:end], Total: total}, nil
}

type fakeSessions struct {
	byToken map[string]*models.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byToken: make(map[string]*models.Session)}
}

func (f *fakeSessions) Create(_ context.Context, session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	copied := *session
	f.byToken[session.RefreshToken] = &copied
	return nil
}

func (f *fakeSessions) GetByRefreshToken(_ context.Context, token string) (*models.Session, error) {
	if s, ok := f.byToken[token]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeSessions) Revoke(_ context.Context, id uuid.UUID) error {
	for _, s := range f.byToken {
		if s.ID == id && s.RevokedAt == nil {
			now := time.Now().UTC()
			s.RevokedAt = &now
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeSessions) Rotate(ctx context.Context, oldID uuid.UUID, replacement *models.Session) error {
	if err := f.Revoke(ctx, oldID); err != nil {
		return err
	}
	return f.Create(ctx, replacement)
}

type fakeVerifier struct {
	claims auth.GoogleClaims
	err    error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (auth.GoogleClaims, error) {
	if f.err != nil {
		return auth.GoogleClaims{}, f.err
	}
	return f.claims, nil
}
