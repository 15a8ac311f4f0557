package contracts

import (
	"fmt"
	"testing"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"payloads/property-create/v1.json", "PropertyCreate/1.0.0"},
		{"payloads/note-update/v1.json", "NoteUpdate/1.0.0"},
		{"events/note-count-delta/v1.json", "NoteCountDelta/1.0.0"},
		{"events/extracted-property/v1.json", "ExtractedProperty/1.0.0"},
		{"unexpected.json", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, generateKeyFromPath(tt.path))
		})
	}
}

func TestValidatePayload_PropertyCreate(t *testing.T) {
	valid := `{
		"title": "3 rooms in Bat Yam",
		"address": "Balfour 5",
		"rooms": 3,
		"source": "Madlan",
		"property_type": "New"
	}`

	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, ValidatePayload("PropertyCreate", []byte(valid)))
	})

	t.Run("missing required field fails", func(t *testing.T) {
		err := ValidatePayload("PropertyCreate", []byte(`{"title": "no address"}`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unlisted fields fail", func(t *testing.T) {
		err := ValidatePayload("PropertyCreate", []byte(`{
			"title": "t", "address": "a", "rooms": 1,
			"source": "Yad2", "property_type": "New",
			"floor": 4
		}`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("enum values are enforced", func(t *testing.T) {
		err := ValidatePayload("PropertyCreate", []byte(`{
			"title": "t", "address": "a", "rooms": 1,
			"source": "Zillow", "property_type": "New"
		}`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("body must be JSON", func(t *testing.T) {
		err := ValidatePayload("PropertyCreate", []byte("not json"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestValidatePayload_OptionalIntForms(t *testing.T) {
	payload := func(v string) []byte {
		return []byte(fmt.Sprintf(`{
			"title": "t", "address": "a", "rooms": 1,
			"source": "Yad2", "property_type": "New",
			"asked_price": %s
		}`, v))
	}

	t.Run("integer is accepted", func(t *testing.T) {
		assert.NoError(t, ValidatePayload("PropertyCreate", payload("2000000")))
	})

	t.Run("the string unknown is accepted", func(t *testing.T) {
		assert.NoError(t, ValidatePayload("PropertyCreate", payload(`"unknown"`)))
	})

	t.Run("null is accepted", func(t *testing.T) {
		assert.NoError(t, ValidatePayload("PropertyCreate", payload("null")))
	})

	t.Run("other strings are rejected", func(t *testing.T) {
		err := ValidatePayload("PropertyCreate", payload(`"a lot"`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		err := ValidatePayload("PropertyCreate", payload("-5"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestValidate_NoteCountDeltaEvent(t *testing.T) {
	valid := []byte(`{
		"property_id": "7b0c3f3e-8c1c-4f7a-9a34-24de6e1a0f11",
		"delta": 1,
		"nonce": 42
	}`)
	require.NoError(t, Validate("NoteCountDelta", "1.0.0", valid))

	t.Run("unknown schema name errors", func(t *testing.T) {
		err := Validate("NoSuchSchema", "1.0.0", valid)
		assert.Error(t, err)
	})
}

func TestValidatePayload_NoteCreate(t *testing.T) {
	assert.NoError(t, ValidatePayload("NoteCreate", []byte(`{"body": "short note"}`)))
	assert.ErrorIs(t, ValidatePayload("NoteCreate", []byte(`{"body": ""}`)), domain.ErrValidation)
	assert.ErrorIs(t, ValidatePayload("NoteCreate", []byte(`{}`)), domain.ErrValidation)
}
