package listings

import "errors"

// DeliveryMethod says how a dress can reach the customer.
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "Pickup"
	DeliveryShipping DeliveryMethod = "Shipping"
	DeliveryBoth     DeliveryMethod = "Both"
)

// RentalPeriod is one bookable duration/price pair.
type RentalPeriod struct {
	Days  int     `json:"days"`
	Price float64 `json:"price"`
}

// Dress is a single rental listing.
type Dress struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Brand            string         `json:"brand"`
	Price            string         `json:"price"`
	NumericPrice     float64        `json:"numericPrice"`
	Size             string         `json:"size"`
	Color            string         `json:"color"`
	Condition        string         `json:"condition"`
	Active           bool           `json:"status"`
	Image            string         `json:"image"`
	Description      string         `json:"description"`
	Materials        string         `json:"materials"`
	CareInstructions string         `json:"careInstructions"`
	Category         string         `json:"category"`
	DateAdded        string         `json:"dateAdded"`
	LastUpdated      string         `json:"lastUpdated"`
	DeliveryMethod   DeliveryMethod `json:"deliveryMethod"`
	Tags             []string       `json:"tags"`
	PickupAddresses  []string       `json:"pickupAddresses,omitempty"`
	RentalPeriods    []RentalPeriod `json:"rentalPeriods"`
}

// ConditionReport is one inspection note for a dress.
type ConditionReport struct {
	Date   string `json:"date"`
	Report string `json:"report"`
}

// AuditLogEntry records a change made to a listing.
type AuditLogEntry struct {
	Date   string `json:"date"`
	Action string `json:"action"`
}

// Booking is a rental of a dress, as shown on the listing detail page.
type Booking struct {
	ID           string `json:"id"`
	DressID      string `json:"dressId"`
	Customer     string `json:"customer"`
	CustomerID   string `json:"customerId"`
	Date         string `json:"date"`
	DeliveryType string `json:"deliveryType"`
}

// Counts summarizes the catalogue for the overview page.
type Counts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

var (
	ErrNotFound  = errors.New("listings: dress not found")
	ErrNameEmpty = errors.New("listings: dress name is required")
)
