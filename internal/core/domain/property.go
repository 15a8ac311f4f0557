package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Property is one real-estate listing under consideration.
type Property struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Address string    `json:"address"`
	Rooms   float64   `json:"rooms"` // half rooms are common, e.g. 3.5

	SquareMeters        OptionalInt `json:"square_meters"`
	AskedPrice          OptionalInt `json:"asked_price"`
	BalconySquareMeters OptionalInt `json:"balcony_square_meters"`
	// PricePerMeter is derived; the storage layer is authoritative,
	// clients may recompute it for immediate display.
	PricePerMeter *int `json:"price_per_meter,omitempty"`

	ContactName  *string `json:"contact_name,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`

	Source       Source       `json:"source"`
	PropertyType PropertyType `json:"property_type"`
	Description  *string      `json:"description,omitempty"`
	Status       Status       `json:"status"`
	URL          *string      `json:"url,omitempty"`

	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	ApartmentBroker *bool    `json:"apartment_broker,omitempty"`

	IsFlagged bool `json:"is_flagged"`
	Rating    *int `json:"rating,omitempty"` // 0..5

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveArea is square meters plus half the balcony, the area used
// for price-per-meter. Returns false when square meters are not known.
func (p *Property) EffectiveArea() (float64, bool) {
	sqm, ok := p.SquareMeters.Value()
	if !ok {
		return 0, false
	}
	balcony, _ := p.BalconySquareMeters.Value() // unknown balcony counts as 0
	return float64(sqm) + 0.5*float64(balcony), true
}

// ComputePricePerMeter derives price per effective square meter.
// Returns nil when price or area is absent or the area is zero.
func (p *Property) ComputePricePerMeter() *int {
	price, ok := p.AskedPrice.Value()
	if !ok {
		return nil
	}
	area, ok := p.EffectiveArea()
	if !ok || area <= 0 {
		return nil
	}
	v := int(math.Round(float64(price) / area))
	return &v
}

// Validate checks the domain invariants of a fully populated property.
func (p *Property) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if p.Rooms < 0 {
		return fmt.Errorf("%w: rooms must be >= 0, got %v", ErrValidation, p.Rooms)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, p.Status)
	}
	if !p.Source.Valid() {
		return fmt.Errorf("%w: unknown source %q", ErrValidation, p.Source)
	}
	if !p.PropertyType.Valid() {
		return fmt.Errorf("%w: unknown property type %q", ErrValidation, p.PropertyType)
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 0 and 5, got %d", ErrValidation, *p.Rating)
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return fmt.Errorf("%w: latitude out of range: %v", ErrValidation, *p.Latitude)
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return fmt.Errorf("%w: longitude out of range: %v", ErrValidation, *p.Longitude)
	}
	return nil
}

// PropertyPatch is a partial change set. Nil fields are left untouched;
// OptionalInt pointers distinguish "don't change" (nil) from setting
// the field to known/unknown/unset.
type PropertyPatch struct {
	Title   *string  `json:"title,omitempty"`
	Address *string  `json:"address,omitempty"`
	Rooms   *float64 `json:"rooms,omitempty"`

	SquareMeters        *OptionalInt `json:"square_meters,omitempty"`
	AskedPrice          *OptionalInt `json:"asked_price,omitempty"`
	BalconySquareMeters *OptionalInt `json:"balcony_square_meters,omitempty"`

	ContactName  *string       `json:"contact_name,omitempty"`
	ContactPhone *string       `json:"contact_phone,omitempty"`
	Source       *Source       `json:"source,omitempty"`
	PropertyType *PropertyType `json:"property_type,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Status       *Status       `json:"status,omitempty"`
	URL          *string       `json:"url,omitempty"`

	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	ApartmentBroker *bool    `json:"apartment_broker,omitempty"`
	IsFlagged       *bool    `json:"is_flagged,omitempty"`
	Rating          *int     `json:"rating,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PropertyPatch) IsEmpty() bool {
	return p == PropertyPatch{}
}

// Apply merges the patch into a copy of prop and recomputes the derived
// price per meter.
func (p PropertyPatch) Apply(prop Property) Property {
	if p.Title != nil {
		prop.Title = *p.Title
	}
	if p.Address != nil {
		prop.Address = *p.Address
	}
	if p.Rooms != nil {
		prop.Rooms = *p.Rooms
	}
	if p.SquareMeters != nil {
		prop.SquareMeters = *p.SquareMeters
	}
	if p.AskedPrice != nil {
		prop.AskedPrice = *p.AskedPrice
	}
	if p.BalconySquareMeters != nil {
		prop.BalconySquareMeters = *p.BalconySquareMeters
	}
	if p.ContactName != nil {
		prop.ContactName = p.ContactName
	}
	if p.ContactPhone != nil {
		prop.ContactPhone = p.ContactPhone
	}
	if p.Source != nil {
		prop.Source = *p.Source
	}
	if p.PropertyType != nil {
		prop.PropertyType = *p.PropertyType
	}
	if p.Description != nil {
		prop.Description = p.Description
	}
	if p.Status != nil {
		prop.Status = *p.Status
	}
	if p.URL != nil {
		prop.URL = p.URL
	}
	if p.Latitude != nil {
		prop.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		prop.Longitude = p.Longitude
	}
	if p.ApartmentBroker != nil {
		prop.ApartmentBroker = p.ApartmentBroker
	}
	if p.IsFlagged != nil {
		prop.IsFlagged = *p.IsFlagged
	}
	if p.Rating != nil {
		prop.Rating = p.Rating
	}
	prop.PricePerMeter = prop.ComputePricePerMeter()
	return prop
}
