package usecase

import (
	"context"
	"log/slog"

	"shipping-table-generator/internal/tablegen/domain"
	internal_error "shipping-table-generator/internal/tablegen/error"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type usecase struct {
	pricing       PricingClient
	writer        TableWriter
	pacer         Pacer
	declaredValue decimal.Decimal
	dimensions    domain.Dimensions
	logger        *slog.Logger
}

var _ UseCase = (*usecase)(nil)

func NewUseCase(
	pricing PricingClient,
	writer TableWriter,
	pacer Pacer,
	declaredValue decimal.Decimal,
	dimensions domain.Dimensions,
	logger *slog.Logger,
) *usecase {
	return &usecase{
		pricing:       pricing,
		writer:        writer,
		pacer:         pacer,
		declaredValue: declaredValue,
		dimensions:    dimensions,
		logger:        logger,
	}
}

func (u *usecase) GenerateTable(ctx context.Context, input *domain.GenerateTableInput) (*domain.RunSummary, error) {
	logger := u.logger.With(
		slog.String("usecase", "generate_table"),
		slog.String("run_id", input.RunID),
		slog.String("tier", string(input.Tier)),
	)

	if err := input.Validate(); err != nil {
		logger.Error("input validation failed", slog.Any("error", err))
		return nil, internal_error.ValidationError(err.Error())
	}

	if err := domain.ValidateCatalog(); err != nil {
		logger.Error("catalog validation failed", slog.Any("error", err))
		return nil, internal_error.ValidationError(err.Error())
	}

	ranges := domain.PostalRanges()
	brackets := domain.WeightBrackets()
	totalCells := len(ranges) * len(brackets)

	logger.Info("starting run", slog.Int("total_cells", totalCells))

	rows := make([]domain.OutputRow, 0, totalCells)
	failures := make([]domain.CellFailure, 0)
	cell := 0

	for _, postalRange := range ranges {
		for _, bracket := range brackets {
			cell++

			// The pacer holds a single token, so the first call passes
			// immediately and every later call waits the full interval,
			// whether or not the previous call succeeded.
			if err := u.pacer.Wait(ctx); err != nil {
				logger.Error("run interrupted while pacing", slog.Any("error", err))
				return u.abortedSummary(input, totalCells, rows, failures), err
			}

			cellLogger := logger.With(
				slog.Int("cell", cell),
				slog.String("range", postalRange.Label),
				slog.Int("destination", postalRange.Start),
				slog.Int("weight_grams", bracket.MidpointGrams()),
			)
			cellLogger.Debug("requesting quote")

			result, err := u.pricing.Quote(ctx, &domain.QuoteInput{
				Tier:            input.Tier,
				DestinationCode: postalRange.Start,
				WeightGrams:     bracket.MidpointGrams(),
				DeclaredValue:   u.declaredValue,
				Dimensions:      u.dimensions,
			})
			if err != nil {
				if _, ok := err.(internal_error.AuthenticationError); ok {
					cellLogger.Error("credentials rejected: aborting run", slog.Any("error", err))
					return u.abortedSummary(input, totalCells, rows, failures), err
				}

				cellLogger.Warn("cell skipped", slog.String("kind", internal_error.Kind(err)), slog.Any("error", err))
				failures = append(failures, domain.CellFailure{
					Range:   postalRange,
					Bracket: bracket,
					Tier:    input.Tier,
					Kind:    internal_error.Kind(err),
					Reason:  err.Error(),
				})
				continue
			}

			cellLogger.Debug("quote received", slog.String("money_cost", result.MoneyCost.StringFixed(2)), slog.Int("time_days", result.TimeDays))
			rows = append(rows, domain.OutputRow{
				ZipCodeStart: postalRange.Start,
				ZipCodeEnd:   postalRange.End,
				WeightStart:  bracket.StartGrams,
				WeightEnd:    bracket.EndGrams,
				MoneyCost:    result.MoneyCost,
				TimeDays:     result.TimeDays,
			})
		}
	}

	if err := u.writer.WriteTable(input.OutputPath, rows); err != nil {
		logger.Error("failed to write table", slog.String("path", input.OutputPath), slog.Any("error", err))
		return u.abortedSummary(input, totalCells, rows, failures), err
	}

	summary := &domain.RunSummary{
		RunID:      input.RunID,
		Tier:       input.Tier,
		Status:     domain.RunCompleted,
		TotalCells: totalCells,
		Succeeded:  len(rows),
		Failed:     len(failures),
		OutputPath: input.OutputPath,
		Failures:   failures,
	}

	logger.Info("run completed",
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
		slog.Any("failure_kinds", lo.CountValuesBy(failures, func(f domain.CellFailure) string { return f.Kind })),
	)

	return summary, nil
}

// abortedSummary reports what was attempted before a fatal abort. No output
// file is written for an aborted run.
func (u *usecase) abortedSummary(input *domain.GenerateTableInput, totalCells int, rows []domain.OutputRow, failures []domain.CellFailure) *domain.RunSummary {
	return &domain.RunSummary{
		RunID:      input.RunID,
		Tier:       input.Tier,
		Status:     domain.RunAborted,
		TotalCells: totalCells,
		Succeeded:  len(rows),
		Failed:     len(failures),
		OutputPath: input.OutputPath,
		Failures:   failures,
	}
}
