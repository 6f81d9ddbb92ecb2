package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type PostalRange struct {
	Start int    `json:"zip_code_start"`
	End   int    `json:"zip_code_end"`
	Label string `json:"label"`
}

type WeightBracket struct {
	StartGrams int `json:"start_grams"`
	EndGrams   int `json:"end_grams"`
}

// MidpointGrams is the representative weight used to price the whole bracket.
func (b WeightBracket) MidpointGrams() int {
	return (b.StartGrams + b.EndGrams) / 2
}

// Official CEP range assignments per state. The order is fixed and carried
// through to the output tables; it is not sorted by code.
var postalRanges = []PostalRange{
	{Start: 1000000, End: 1999999, Label: "SP"},
	{Start: 2000000, End: 2899999, Label: "RJ"},
	{Start: 2900000, End: 2999999, Label: "ES"},
	{Start: 3000000, End: 3999999, Label: "MG"},
	{Start: 4000000, End: 4899999, Label: "BA"},
	{Start: 4900000, End: 4999999, Label: "SE"},
	{Start: 5000000, End: 5699999, Label: "PE"},
	{Start: 5700000, End: 5799999, Label: "AL"},
	{Start: 5800000, End: 5899999, Label: "PB"},
	{Start: 5900000, End: 5999999, Label: "RN"},
	{Start: 6000000, End: 6399999, Label: "CE"},
	{Start: 6400000, End: 6499999, Label: "PI"},
	{Start: 6500000, End: 6599999, Label: "MA"},
	{Start: 6600000, End: 6889999, Label: "PA"},
	{Start: 6890000, End: 6899999, Label: "AP"},
	{Start: 7000000, End: 7279999, Label: "DF"},
	{Start: 7280000, End: 7679999, Label: "GO"},
	{Start: 7680000, End: 7699999, Label: "RO"},
	{Start: 6990000, End: 6999999, Label: "AC"},
	{Start: 7800000, End: 7889999, Label: "MT"},
	{Start: 7900000, End: 7999999, Label: "MS"},
	{Start: 8000000, End: 8799999, Label: "PR"},
	{Start: 8800000, End: 8999999, Label: "SC"},
	{Start: 9000000, End: 9999999, Label: "RS"},
	{Start: 7700000, End: 7799999, Label: "TO"},
	{Start: 6930000, End: 6939999, Label: "RR"},
}

// Brackets are contiguous and cover 1 g to 10000 g.
var weightBrackets = []WeightBracket{
	{StartGrams: 1, EndGrams: 250},
	{StartGrams: 251, EndGrams: 500},
	{StartGrams: 501, EndGrams: 750},
	{StartGrams: 751, EndGrams: 1000},
	{StartGrams: 1001, EndGrams: 2000},
	{StartGrams: 2001, EndGrams: 3000},
	{StartGrams: 3001, EndGrams: 4000},
	{StartGrams: 4001, EndGrams: 5000},
	{StartGrams: 5001, EndGrams: 6000},
	{StartGrams: 6001, EndGrams: 7000},
	{StartGrams: 7001, EndGrams: 8000},
	{StartGrams: 8001, EndGrams: 9000},
	{StartGrams: 9001, EndGrams: 10000},
}

// PostalRanges returns the fixed ordered CEP range catalog. Callers get a
// fresh copy so the catalog stays immutable process-wide.
func PostalRanges() []PostalRange {
	ranges := make([]PostalRange, len(postalRanges))
	copy(ranges, postalRanges)
	return ranges
}

// WeightBrackets returns the fixed ordered weight bracket catalog.
func WeightBrackets() []WeightBracket {
	brackets := make([]WeightBracket, len(weightBrackets))
	copy(brackets, weightBrackets)
	return brackets
}

// ValidateCatalog checks the static catalogs before the first request is
// issued. All violations are collected rather than stopping at the first.
func ValidateCatalog() error {
	var result *multierror.Error

	for i, r := range postalRanges {
		if r.Start > r.End {
			result = multierror.Append(result, fmt.Errorf("postal range %d (%s): start %d greater than end %d", i, r.Label, r.Start, r.End))
		}

		if r.Start < 1 || r.End > 99999999 {
			result = multierror.Append(result, fmt.Errorf("postal range %d (%s): bounds must fit in 8 digits", i, r.Label))
		}

		if r.Label == "" {
			result = multierror.Append(result, fmt.Errorf("postal range %d: label is required", i))
		}
	}

	for i, b := range weightBrackets {
		if b.StartGrams > b.EndGrams {
			result = multierror.Append(result, fmt.Errorf("weight bracket %d: start %dg greater than end %dg", i, b.StartGrams, b.EndGrams))
		}

		if i > 0 && b.StartGrams != weightBrackets[i-1].EndGrams+1 {
			result = multierror.Append(result, fmt.Errorf("weight bracket %d: not contiguous with previous bracket", i))
		}
	}

	if len(weightBrackets) > 0 {
		if weightBrackets[0].StartGrams != 1 {
			result = multierror.Append(result, fmt.Errorf("first weight bracket must start at 1g"))
		}

		if weightBrackets[len(weightBrackets)-1].EndGrams != 10000 {
			result = multierror.Append(result, fmt.Errorf("last weight bracket must end at 10000g"))
		}
	}

	return result.ErrorOrNil()
}
