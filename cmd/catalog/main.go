package main

import (
	"fmt"
	"os"

	"shipping-table-generator/internal/tablegen/domain"
)

// Dumps every cell the generator would query, one line per
// (range, bracket) pair, for a quick sanity check of the catalogs.
func main() {
	if err := domain.ValidateCatalog(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid catalog: %s\n", err)
		os.Exit(1)
	}

	ranges := domain.PostalRanges()
	brackets := domain.WeightBrackets()

	fmt.Printf("ranges=%d brackets=%d cells_per_tier=%d\n", len(ranges), len(brackets), len(ranges)*len(brackets))

	for _, postalRange := range ranges {
		for _, bracket := range brackets {
			fmt.Printf("%s cep=%08d-%08d weight=%d-%dg representative_weight=%dg\n",
				postalRange.Label,
				postalRange.Start,
				postalRange.End,
				bracket.StartGrams,
				bracket.EndGrams,
				bracket.MidpointGrams(),
			)
		}
	}
}
