package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestServiceTier_Code(t *testing.T) {
	assert.Equal(t, "STD", TierStandard.Code())
	assert.Equal(t, "EXP", TierExpress.Code())
}

func TestServiceTier_Validate(t *testing.T) {
	assert.NoError(t, TierStandard.Validate())
	assert.NoError(t, TierExpress.Validate())
	assert.Error(t, ServiceTier("premium").Validate())
	assert.Error(t, ServiceTier("").Validate())
}

func validQuoteInput() QuoteInput {
	return QuoteInput{
		Tier:            TierStandard,
		DestinationCode: 1000000,
		WeightGrams:     125,
		DeclaredValue:   decimal.Zero,
		Dimensions:      Dimensions{HeightCm: 10, WidthCm: 15, DepthCm: 20},
	}
}

func TestQuoteInput_Validate(t *testing.T) {
	input := validQuoteInput()
	assert.NoError(t, input.Validate())

	input = validQuoteInput()
	input.Tier = "overnight"
	assert.Error(t, input.Validate())

	input = validQuoteInput()
	input.DestinationCode = 0
	assert.Error(t, input.Validate())

	input = validQuoteInput()
	input.DestinationCode = 100000000
	assert.Error(t, input.Validate(), "more than 8 digits")

	input = validQuoteInput()
	input.WeightGrams = 0
	assert.Error(t, input.Validate())

	input = validQuoteInput()
	input.DeclaredValue = decimal.NewFromInt(-1)
	assert.Error(t, input.Validate())

	input = validQuoteInput()
	input.Dimensions.DepthCm = 0
	assert.Error(t, input.Validate())
}

func TestGenerateTableInput_Validate(t *testing.T) {
	input := GenerateTableInput{Tier: TierExpress, OutputPath: "out.csv"}
	assert.NoError(t, input.Validate())

	input = GenerateTableInput{Tier: TierExpress}
	assert.Error(t, input.Validate())

	input = GenerateTableInput{Tier: "bogus", OutputPath: "out.csv"}
	assert.Error(t, input.Validate())
}
