package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bitsbay/internal/models"
	"bitsbay/internal/policy"
	"bitsbay/internal/store"
)

// listingWriteRequest is the client-writable field set. The seller is never
// taken from the body; it is forced to the authenticated requester.
type listingWriteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Tags        *string `json:"tags"`
	Negotiable  *bool   `json:"negotiable"`
	Year        *string `json:"year"`
	Status      *string `json:"status"`
}

func (req listingWriteRequest) validateStatus() error {
	if req.Status != nil && !models.ValidListingStatus(*req.Status) {
		return fieldError("status", fmt.Sprintf("status must be %q or %q", models.ListingStatusAvailable, models.ListingStatusSold))
	}
	return nil
}

// handleListListings returns a page of all listings, newest first.
func (a *API) handleListListings(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	result, err := a.store.Listings.List(ctx, page, pageSize)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if pagePastEnd(page, result) {
		respondFailure(w, notFoundError("Invalid page."))
		return
	}

	respondJSON(w, http.StatusOK, paginatedEnvelope(result.Total, pageSize, listingViews(result.Items)))
}

// handleMyListings returns a page of the requester's own listings.
func (a *API) handleMyListings(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	page, pageSize := pageParams(r)

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	result, err := a.store.Listings.ListBySeller(ctx, *identity, page, pageSize)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if pagePastEnd(page, result) {
		respondFailure(w, notFoundError("Invalid page."))
		return
	}

	respondJSON(w, http.StatusOK, paginatedEnvelope(result.Total, pageSize, listingViews(result.Items)))
}

func (a *API) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := a.fetchListing(r)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newListingView(*listing))
}

func (a *API) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req listingWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondFailure(w, validationError(err.Error()))
		return
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		respondFailure(w, fieldError("title", "title is required"))
		return
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		respondFailure(w, fieldError("description", "description is required"))
		return
	}
	if err := req.validateStatus(); err != nil {
		respondFailure(w, err)
		return
	}

	listing := &models.Listing{
		SellerID:    *identity,
		Title:       *req.Title,
		Description: *req.Description,
		Price:       req.Price,
		Year:        req.Year,
		Status:      models.ListingStatusAvailable,
	}
	if req.Tags != nil {
		listing.Tags = *req.Tags
	}
	if req.Negotiable != nil {
		listing.Negotiable = *req.Negotiable
	}
	if req.Status != nil {
		listing.Status = *req.Status
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.Listings.Create(ctx, listing); err != nil {
		respondFailure(w, err)
		return
	}

	a.metrics.RecordListingAction("create")
	a.publishJSON(listingCreatedTopic, map[string]any{
		"listing_id": listing.ID,
		"seller_id":  listing.SellerID,
	})

	respondJSON(w, http.StatusCreated, newListingView(*listing))
}

// handleUpdateListing serves both PUT and PATCH. Only the owner may mutate;
// the ownership check runs before any store write.
func (a *API) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	listing, err := a.fetchListing(r)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if err := a.authorizeWrite(identity, listing.SellerID); err != nil {
		respondFailure(w, err)
		return
	}

	var req listingWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondFailure(w, validationError(err.Error()))
		return
	}
	if r.Method == http.MethodPut {
		if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
			respondFailure(w, fieldError("title", "title is required"))
			return
		}
		if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
			respondFailure(w, fieldError("description", "description is required"))
			return
		}
	}
	if err := req.validateStatus(); err != nil {
		respondFailure(w, err)
		return
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.Negotiable != nil {
		updates["negotiable"] = *req.Negotiable
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		respondJSON(w, http.StatusOK, newListingView(*listing))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	updated, err := a.store.Listings.Update(ctx, listing.ID, updates)
	if err != nil {
		respondFailure(w, err)
		return
	}

	a.metrics.RecordListingAction("update")
	a.publishJSON(listingUpdatedTopic, map[string]any{
		"listing_id": updated.ID,
		"seller_id":  updated.SellerID,
		"status":     updated.Status,
	})

	respondJSON(w, http.StatusOK, newListingView(*updated))
}

func (a *API) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	listing, err := a.fetchListing(r)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if err := a.authorizeWrite(identity, listing.SellerID); err != nil {
		respondFailure(w, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.Listings.Delete(ctx, listing.ID); err != nil {
		respondFailure(w, err)
		return
	}

	a.metrics.RecordListingAction("delete")
	a.publishJSON(listingDeletedTopic, map[string]any{
		"listing_id": listing.ID,
		"seller_id":  listing.SellerID,
	})

	respondJSON(w, http.StatusNoContent, nil)
}

// handleListingImage returns a presigned upload URL for the listing's image.
// Owner only; degrades with 424 when no object storage is configured.
func (a *API) handleListingImage(w http.ResponseWriter, r *http.Request) {
	if a.store.S3 == nil {
		respondJSON(w, http.StatusFailedDependency, map[string]any{"error": "object storage not configured"})
		return
	}

	identity := identityFrom(r)

	listing, err := a.fetchListing(r)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if err := a.authorizeWrite(identity, listing.SellerID); err != nil {
		respondFailure(w, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	key := fmt.Sprintf("media/listings/%s/%s", listing.ID, uuid.New())
	uploadURL, err := a.store.S3.PresignPut(ctx, a.config.MediaBucket, key, presignURLExpiry)
	if err != nil {
		respondFailure(w, fmt.Errorf("presign put: %w", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"upload_url": uploadURL,
		"key":        key,
	})
}

// fetchListing resolves the {id} URL parameter to a listing with its seller
// preloaded. Unknown and malformed identifiers both read as not found.
func (a *API) fetchListing(r *http.Request) (*models.Listing, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		return nil, notFoundError("listing not found")
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	listing, err := a.store.Listings.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError("listing not found")
	}
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// authorizeWrite maps the ownership policy verdict onto the error taxonomy.
func (a *API) authorizeWrite(identity *uuid.UUID, ownerID uuid.UUID) error {
	err := policy.Authorize(identity, ownerID, policy.OpWrite)
	switch {
	case errors.Is(err, policy.ErrUnauthenticated):
		return authenticationError(err.Error())
	case errors.Is(err, policy.ErrNotOwner):
		return permissionError(err.Error())
	default:
		return err
	}
}

func listingViews(listings []models.Listing) []listingView {
	views := make([]listingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, newListingView(l))
	}
	return views
}
