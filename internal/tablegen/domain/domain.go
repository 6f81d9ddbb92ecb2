package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type ServiceTier string

const (
	TierStandard ServiceTier = "standard"
	TierExpress  ServiceTier = "express"
)

// Code returns the provider-side service code.
func (t ServiceTier) Code() string {
	if t == TierExpress {
		return "EXP"
	}
	return "STD"
}

func (t ServiceTier) Validate() error {
	if t != TierStandard && t != TierExpress {
		return fmt.Errorf("unknown service tier: %q", string(t))
	}

	return nil
}

type Dimensions struct {
	HeightCm int `json:"height_cm"`
	WidthCm  int `json:"width_cm"`
	DepthCm  int `json:"depth_cm"`
}

func (o *Dimensions) Validate() error {
	if o.HeightCm <= 0 {
		return errors.New(".height_cm must be positive")
	}

	if o.WidthCm <= 0 {
		return errors.New(".width_cm must be positive")
	}

	if o.DepthCm <= 0 {
		return errors.New(".depth_cm must be positive")
	}

	return nil
}

type QuoteInput struct {
	Tier            ServiceTier     `json:"tier"`
	DestinationCode int             `json:"destination_code"`
	WeightGrams     int             `json:"weight_grams"`
	DeclaredValue   decimal.Decimal `json:"declared_value"`
	Dimensions      Dimensions      `json:"dimensions"`
}

func (o *QuoteInput) Validate() error {
	if err := o.Tier.Validate(); err != nil {
		return fmt.Errorf("tier: %s", err)
	}

	if o.DestinationCode < 1 || o.DestinationCode > 99999999 {
		return errors.New("destination_code must fit in 8 digits")
	}

	if o.WeightGrams <= 0 {
		return errors.New("weight_grams must be positive")
	}

	if o.DeclaredValue.IsNegative() {
		return errors.New("declared_value must not be negative")
	}

	if err := o.Dimensions.Validate(); err != nil {
		return fmt.Errorf("dimensions%s", err)
	}

	return nil
}

type QuoteResult struct {
	MoneyCost decimal.Decimal `json:"money_cost"`
	TimeDays  int             `json:"time_days"`
}

type OutputRow struct {
	ZipCodeStart int             `json:"zip_code_start"`
	ZipCodeEnd   int             `json:"zip_code_end"`
	WeightStart  int             `json:"weight_start"`
	WeightEnd    int             `json:"weight_end"`
	MoneyCost    decimal.Decimal `json:"money_cost"`
	TimeDays     int             `json:"time_days"`
}

type CellFailure struct {
	Range   PostalRange   `json:"range"`
	Bracket WeightBracket `json:"bracket"`
	Tier    ServiceTier   `json:"tier"`
	Kind    string        `json:"kind"`
	Reason  string        `json:"reason"`
}

type GenerateTableInput struct {
	RunID      string      `json:"run_id"`
	Tier       ServiceTier `json:"tier"`
	OutputPath string      `json:"output_path"`
}

func (o *GenerateTableInput) Validate() error {
	if err := o.Tier.Validate(); err != nil {
		return fmt.Errorf("tier: %s", err)
	}

	if o.OutputPath == "" {
		return errors.New("output_path is required")
	}

	return nil
}

const (
	RunCompleted = "completed"
	RunAborted   = "aborted"
)

type RunSummary struct {
	RunID      string        `json:"run_id"`
	Tier       ServiceTier   `json:"tier"`
	Status     string        `json:"status"`
	TotalCells int           `json:"total_cells"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	OutputPath string        `json:"output_path"`
	Failures   []CellFailure `json:"failures,omitempty"`
}
