package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativVentures-hub/focus-group-ai/model"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cat.SessionTypes)
	assert.NotEmpty(t, cat.BuyingBehaviors)
	assert.NotEmpty(t, cat.ProductCategories)
	assert.Len(t, cat.Dimensions, 7)
}

func TestDefaultSessionType(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	defaultType, ok := cat.DefaultSessionType()
	require.True(t, ok)
	assert.Equal(t, "market_research", defaultType.Value)
	assert.False(t, defaultType.Disabled)
}

func TestSessionTypeLookup(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	comingSoon, ok := cat.SessionType("user_experience")
	require.True(t, ok)
	assert.True(t, comingSoon.Disabled)

	_, ok = cat.SessionType("palm_reading")
	assert.False(t, ok)
}

func TestDimensionLookup(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	gender, ok := cat.Dimension("gender")
	require.True(t, ok)
	assert.Equal(t, "Any", gender.Options[0].Label)

	_, ok = cat.Dimension("shoe_size")
	assert.False(t, ok)

	names := cat.DimensionNames()
	assert.Equal(t, "gender", names[0])
	assert.Contains(t, names, "race")
}

func TestSearchOptions(t *testing.T) {
	options := []model.Option{
		{Value: "dogs", Label: "Dogs"},
		{Value: "cats", Label: "Cats"},
		{Value: "food_beverage", Label: "Food and Beverage"},
	}

	assert.Len(t, SearchOptions(options, ""), 3)
	assert.Len(t, SearchOptions(options, "AND"), 1)
	assert.Empty(t, SearchOptions(options, "zzz"))

	matched := SearchOptions(options, "og")
	require.Len(t, matched, 1)
	assert.Equal(t, "dogs", matched[0].Value)
}
