package domain

// ExtractedProperty is the field set the listing extractor pulls out of
// a scraped page. All fields are best-effort; absent values stay nil or
// unset. Scraped payloads still use the legacy sentinel, so numeric
// fields are normalized through FromLegacyInt before they land here.
type ExtractedProperty struct {
	Title               string      `json:"title"`
	Address             string      `json:"address"`
	Rooms               *float64    `json:"rooms,omitempty"`
	SquareMeters        OptionalInt `json:"square_meters"`
	AskedPrice          OptionalInt `json:"asked_price"`
	BalconySquareMeters OptionalInt `json:"balcony_square_meters"`
	ContactName         *string     `json:"contact_name,omitempty"`
	ContactPhone        *string     `json:"contact_phone,omitempty"`
	Description         *string     `json:"description,omitempty"`
	PropertyType        *string     `json:"property_type,omitempty"`
	ApartmentBroker     *bool       `json:"apartment_broker,omitempty"`
}
