package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalInt_JSON(t *testing.T) {
	t.Run("known value round trips as a number", func(t *testing.T) {
		data, err := json.Marshal(KnownInt(85))
		require.NoError(t, err)
		assert.Equal(t, "85", string(data))

		var o OptionalInt
		require.NoError(t, json.Unmarshal([]byte("85"), &o))
		v, ok := o.Value()
		assert.True(t, ok)
		assert.Equal(t, 85, v)
	})

	t.Run("unknown marshals as the string unknown", func(t *testing.T) {
		data, err := json.Marshal(UnknownInt())
		require.NoError(t, err)
		assert.Equal(t, `"unknown"`, string(data))

		var o OptionalInt
		require.NoError(t, json.Unmarshal([]byte(`"unknown"`), &o))
		assert.True(t, o.IsUnknown())
		assert.False(t, o.IsKnown())
	})

	t.Run("null means unset", func(t *testing.T) {
		data, err := json.Marshal(UnsetInt())
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))

		var o OptionalInt
		require.NoError(t, json.Unmarshal([]byte("null"), &o))
		assert.False(t, o.IsSet())
	})

	t.Run("other strings are rejected", func(t *testing.T) {
		var o OptionalInt
		err := json.Unmarshal([]byte(`"maybe"`), &o)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("a known 1 is a genuine value", func(t *testing.T) {
		var o OptionalInt
		require.NoError(t, json.Unmarshal([]byte("1"), &o))
		v, ok := o.Value()
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		assert.False(t, o.IsUnknown())
	})
}

func TestOptionalInt_LegacyMapping(t *testing.T) {
	one := 1
	ninety := 90

	t.Run("nil maps to unset", func(t *testing.T) {
		assert.False(t, FromLegacyInt(nil).IsSet())
	})

	t.Run("sentinel 1 maps to unknown", func(t *testing.T) {
		o := FromLegacyInt(&one)
		assert.True(t, o.IsUnknown())
	})

	t.Run("other values map to known", func(t *testing.T) {
		o := FromLegacyInt(&ninety)
		v, ok := o.Value()
		assert.True(t, ok)
		assert.Equal(t, 90, v)
	})

	t.Run("a known 1 degrades to unknown across the legacy boundary", func(t *testing.T) {
		// The sentinel schema has no way to store a genuine 1.
		back := FromLegacyInt(KnownInt(1).ToLegacyInt())
		assert.True(t, back.IsUnknown())
		assert.False(t, back.IsKnown())
	})

	t.Run("round trip back to the sentinel convention", func(t *testing.T) {
		assert.Nil(t, UnsetInt().ToLegacyInt())

		back := UnknownInt().ToLegacyInt()
		require.NotNil(t, back)
		assert.Equal(t, 1, *back)

		known := KnownInt(90).ToLegacyInt()
		require.NotNil(t, known)
		assert.Equal(t, 90, *known)
	})
}

func TestProperty_EffectiveArea(t *testing.T) {
	t.Run("balcony counts at half weight", func(t *testing.T) {
		p := Property{SquareMeters: KnownInt(80), BalconySquareMeters: KnownInt(10)}
		area, ok := p.EffectiveArea()
		require.True(t, ok)
		assert.Equal(t, 85.0, area)
	})

	t.Run("unknown balcony counts as zero", func(t *testing.T) {
		p := Property{SquareMeters: KnownInt(80), BalconySquareMeters: UnknownInt()}
		area, ok := p.EffectiveArea()
		require.True(t, ok)
		assert.Equal(t, 80.0, area)
	})

	t.Run("unknown square meters means no area", func(t *testing.T) {
		p := Property{SquareMeters: UnknownInt(), BalconySquareMeters: KnownInt(10)}
		_, ok := p.EffectiveArea()
		assert.False(t, ok)
	})
}

func TestProperty_ComputePricePerMeter(t *testing.T) {
	t.Run("rounds to the nearest integer", func(t *testing.T) {
		p := Property{AskedPrice: KnownInt(2000000), SquareMeters: KnownInt(85)}
		ppm := p.ComputePricePerMeter()
		require.NotNil(t, ppm)
		assert.Equal(t, 23529, *ppm)
	})

	t.Run("uses the effective area including balcony", func(t *testing.T) {
		p := Property{
			AskedPrice:          KnownInt(1700000),
			SquareMeters:        KnownInt(80),
			BalconySquareMeters: KnownInt(10),
		}
		ppm := p.ComputePricePerMeter()
		require.NotNil(t, ppm)
		assert.Equal(t, 20000, *ppm)
	})

	t.Run("nil when price is unknown", func(t *testing.T) {
		p := Property{AskedPrice: UnknownInt(), SquareMeters: KnownInt(85)}
		assert.Nil(t, p.ComputePricePerMeter())
	})

	t.Run("nil when area is unknown or zero", func(t *testing.T) {
		p := Property{AskedPrice: KnownInt(2000000), SquareMeters: UnknownInt()}
		assert.Nil(t, p.ComputePricePerMeter())

		p = Property{AskedPrice: KnownInt(2000000), SquareMeters: KnownInt(0)}
		assert.Nil(t, p.ComputePricePerMeter())
	})
}

func validProperty() Property {
	return Property{
		ID:           uuid.New(),
		Title:        "3.5 rooms in Florentin",
		Address:      "Vital 12, Tel Aviv",
		Rooms:        3.5,
		Source:       SourceYad2,
		PropertyType: PropertyTypeExisting,
		Status:       StatusSeen,
	}
}

func TestProperty_Validate(t *testing.T) {
	t.Run("valid property passes", func(t *testing.T) {
		p := validProperty()
		assert.NoError(t, p.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		p := validProperty()
		p.Title = ""
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})

	t.Run("negative rooms", func(t *testing.T) {
		p := validProperty()
		p.Rooms = -1
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})

	t.Run("unknown enum values", func(t *testing.T) {
		p := validProperty()
		p.Status = Status("Bought")
		assert.ErrorIs(t, p.Validate(), ErrValidation)

		p = validProperty()
		p.Source = Source("Craigslist")
		assert.ErrorIs(t, p.Validate(), ErrValidation)

		p = validProperty()
		p.PropertyType = PropertyType("Penthouse")
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})

	t.Run("rating out of range", func(t *testing.T) {
		p := validProperty()
		six := 6
		p.Rating = &six
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})

	t.Run("coordinates out of range", func(t *testing.T) {
		p := validProperty()
		lat := 91.0
		p.Latitude = &lat
		assert.ErrorIs(t, p.Validate(), ErrValidation)

		p = validProperty()
		lng := -181.0
		p.Longitude = &lng
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})
}

func TestPropertyPatch_Apply(t *testing.T) {
	t.Run("empty patch changes nothing but recomputes the derived field", func(t *testing.T) {
		p := validProperty()
		p.AskedPrice = KnownInt(2000000)
		p.SquareMeters = KnownInt(100)

		out := PropertyPatch{}.Apply(p)
		assert.Equal(t, p.Title, out.Title)
		require.NotNil(t, out.PricePerMeter)
		assert.Equal(t, 20000, *out.PricePerMeter)
	})

	t.Run("price change recomputes price per meter", func(t *testing.T) {
		p := validProperty()
		p.AskedPrice = KnownInt(2000000)
		p.SquareMeters = KnownInt(100)

		newPrice := KnownInt(1500000)
		out := PropertyPatch{AskedPrice: &newPrice}.Apply(p)
		require.NotNil(t, out.PricePerMeter)
		assert.Equal(t, 15000, *out.PricePerMeter)
	})

	t.Run("setting price to unknown clears the derived field", func(t *testing.T) {
		p := validProperty()
		p.AskedPrice = KnownInt(2000000)
		p.SquareMeters = KnownInt(100)
		p.PricePerMeter = p.ComputePricePerMeter()

		unknown := UnknownInt()
		out := PropertyPatch{AskedPrice: &unknown}.Apply(p)
		assert.Nil(t, out.PricePerMeter)
	})

	t.Run("nil fields are left untouched", func(t *testing.T) {
		p := validProperty()
		title := "Updated title"
		out := PropertyPatch{Title: &title}.Apply(p)
		assert.Equal(t, "Updated title", out.Title)
		assert.Equal(t, p.Address, out.Address)
		assert.Equal(t, p.Status, out.Status)
	})

	t.Run("the original is not mutated", func(t *testing.T) {
		p := validProperty()
		title := "Updated title"
		_ = PropertyPatch{Title: &title}.Apply(p)
		assert.Equal(t, "3.5 rooms in Florentin", p.Title)
	})
}

func TestPropertyPatch_IsEmpty(t *testing.T) {
	assert.True(t, PropertyPatch{}.IsEmpty())

	flag := true
	assert.False(t, PropertyPatch{IsFlagged: &flag}.IsEmpty())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Contacted Realtor")
	require.NoError(t, err)
	assert.Equal(t, StatusContactedRealtor, st)

	_, err = ParseStatus("contacted realtor")
	assert.ErrorIs(t, err, ErrValidation)
}
