package usecase

import (
	"context"

	"shipping-table-generator/internal/tablegen/domain"
)

type (
	PricingClient interface {
		Quote(ctx context.Context, input *domain.QuoteInput) (*domain.QuoteResult, error)
	}

	TableWriter interface {
		WriteTable(path string, rows []domain.OutputRow) error
	}

	// Pacer blocks until the next request is allowed to go out.
	// Production uses a rate.Limiter with a one token burst.
	Pacer interface {
		Wait(ctx context.Context) error
	}

	UseCase interface {
		GenerateTable(ctx context.Context, input *domain.GenerateTableInput) (*domain.RunSummary, error)
	}
)
