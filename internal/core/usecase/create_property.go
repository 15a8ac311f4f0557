package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/contracts"
	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// CreatePropertyUseCase records a new candidate property.
type CreatePropertyUseCase struct {
	storage  port.PropertyStoragePort
	cache    *cache.PropertyCache
	notifier port.NotifierPort
}

// NewCreatePropertyUseCase creates the use case.
func NewCreatePropertyUseCase(storage port.PropertyStoragePort, c *cache.PropertyCache, notifier port.NotifierPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{storage: storage, cache: c, notifier: notifier}
}

type createPropertyInput struct {
	Title               string              `json:"title"`
	Address             string              `json:"address"`
	Rooms               float64             `json:"rooms"`
	SquareMeters        domain.OptionalInt  `json:"square_meters"`
	AskedPrice          domain.OptionalInt  `json:"asked_price"`
	BalconySquareMeters domain.OptionalInt  `json:"balcony_square_meters"`
	ContactName         *string             `json:"contact_name"`
	ContactPhone        *string             `json:"contact_phone"`
	Source              domain.Source       `json:"source"`
	PropertyType        domain.PropertyType `json:"property_type"`
	Description         *string             `json:"description"`
	Status              *domain.Status      `json:"status"`
	URL                 *string             `json:"url"`
	Latitude            *float64            `json:"latitude"`
	Longitude           *float64            `json:"longitude"`
	ApartmentBroker     *bool               `json:"apartment_broker"`
	IsFlagged           bool                `json:"is_flagged"`
	Rating              *int                `json:"rating"`
}

// Execute validates the payload and persists the new property. A
// validation failure short-circuits before any storage call.
func (uc *CreatePropertyUseCase) Execute(ctx context.Context, payload json.RawMessage) (domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateProperty"})

	if err := contracts.ValidatePayload("PropertyCreate", payload); err != nil {
		ucLogger.Warn("Payload rejected by schema", port.Fields{"error": err.Error()})
		return domain.Property{}, err
	}

	var in createPropertyInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return domain.Property{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	status := domain.DefaultStatus
	if in.Status != nil {
		status = *in.Status
	}

	p := domain.Property{
		ID:                  uuid.New(),
		Title:               in.Title,
		Address:             in.Address,
		Rooms:               in.Rooms,
		SquareMeters:        in.SquareMeters,
		AskedPrice:          in.AskedPrice,
		BalconySquareMeters: in.BalconySquareMeters,
		ContactName:         in.ContactName,
		ContactPhone:        in.ContactPhone,
		Source:              in.Source,
		PropertyType:        in.PropertyType,
		Description:         in.Description,
		Status:              status,
		URL:                 in.URL,
		Latitude:            in.Latitude,
		Longitude:           in.Longitude,
		ApartmentBroker:     in.ApartmentBroker,
		IsFlagged:           in.IsFlagged,
		Rating:              in.Rating,
	}
	if err := p.Validate(); err != nil {
		return domain.Property{}, err
	}

	ucLogger.Info("Use case started: creating property", port.Fields{"title": p.Title, "status": string(p.Status)})

	stored, err := uc.storage.Create(ctx, p)
	if err != nil {
		ucLogger.Error("Storage returned an error during create", err, nil)
		return domain.Property{}, fmt.Errorf("failed to create property: %w", err)
	}

	reconcileAfterWrite(ctx, uc.cache, stored)
	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "property_created", Payload: stored})

	ucLogger.Info("Use case finished: property created", port.Fields{"property_id": stored.ID.String()})
	return stored, nil
}
