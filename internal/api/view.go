package api

import (
	"fmt"
	"strings"

	"bitsbay/internal/models"
)

// badge is one presentation chip rendered by the frontend.
type badge struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// displayTags groups badges into the fixed rows the frontend lays out.
// It is a pure function of the stored listing fields.
type displayTags struct {
	Row1Content []badge `json:"row_1_content"`
	Row2Status  []badge `json:"row_2_status"`
	Row3Year    []badge `json:"row_3_year"`
	Row4Price   []badge `json:"row_4_price"`
}

// listingView is the read projection of a listing, with the seller resolved
// to display name and contact details.
type listingView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	Price       *int        `json:"price"`
	Negotiable  bool        `json:"negotiable"`
	Phone       *string     `json:"phone"`
	Email       string      `json:"email"`
	Year        *string     `json:"year"`
	Status      string      `json:"status"`
	DisplayTags displayTags `json:"display_tags"`
}

func newListingView(l models.Listing) listingView {
	return listingView{
		ID:          l.ID.String(),
		Name:        l.Seller.FullName(),
		Title:       l.Title,
		Description: l.Description,
		Tags:        l.TagList(),
		Price:       l.Price,
		Negotiable:  l.Negotiable,
		Phone:       l.Seller.PhoneNumber,
		Email:       l.Seller.Email,
		Year:        l.Year,
		Status:      l.Status,
		DisplayTags: buildDisplayTags(l),
	}
}

func buildDisplayTags(l models.Listing) displayTags {
	tags := l.TagList()
	content := make([]badge, 0, len(tags))
	for _, t := range tags {
		content = append(content, badge{Type: "content", Value: t, Color: "gray"})
	}

	statusColor := "green"
	if l.Status != models.ListingStatusAvailable {
		statusColor = "red"
	}
	status := []badge{{Type: "status", Value: capitalize(l.Status), Color: statusColor}}
	if l.Negotiable {
		status = append(status, badge{Type: "negotiable", Value: "Negotiable", Color: "blue"})
	}

	year := []badge{}
	if l.Year != nil && *l.Year != "" {
		year = append(year, badge{Type: "year", Value: *l.Year, Color: "purple"})
	}

	price := []badge{}
	if l.Price != nil {
		price = append(price, badge{Type: "price", Value: fmt.Sprintf("₹%d", *l.Price), Color: "orange"})
	}

	return displayTags{
		Row1Content: content,
		Row2Status:  status,
		Row3Year:    year,
		Row4Price:   price,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
