package api

import (
	"encoding/json"
	"net/http"

	"bitsbay/internal/models"
)

type profileView struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

func newProfileView(u *models.User) profileView {
	return profileView{
		ID:          u.ID.String(),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
	}
}

// handleGetProfile returns the authenticated user's own profile.
func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	user, err := a.store.Users.GetByID(ctx, *identity)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newProfileView(user))
}

// handleUpdateProfile accepts a partial profile body where only the phone
// number may change. Identity fields are read-only on this surface. The body
// is decoded as a raw key map so that a present null, which clears the
// stored number, is distinguishable from an absent field.
func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req map[string]json.RawMessage
	if err := decodeJSON(r, &req); err != nil {
		respondFailure(w, validationError(err.Error()))
		return
	}

	for key := range req {
		if key != "phone_number" {
			respondFailure(w, validationError("only the phone_number field can be updated"))
			return
		}
	}
	raw, ok := req["phone_number"]
	if !ok {
		respondFailure(w, validationError("only the phone_number field can be updated"))
		return
	}

	var phone *string
	if err := json.Unmarshal(raw, &phone); err != nil {
		respondFailure(w, fieldError("phone_number", "Phone number must be a string"))
		return
	}
	if phone != nil {
		if err := validatePhoneNumber(*phone); err != nil {
			respondFailure(w, err)
			return
		}
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	user, err := a.store.Users.UpdatePhoneNumber(ctx, *identity, phone)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newProfileView(user))
}

// validatePhoneNumber enforces the exactly-ten-digits rule.
func validatePhoneNumber(phone string) error {
	for _, c := range phone {
		if c < '0' || c > '9' {
			return fieldError("phone_number", "Phone number must contain only digits")
		}
	}
	if len(phone) != 10 {
		return fieldError("phone_number", "Phone number must be exactly 10 digits long")
	}
	return nil
}
