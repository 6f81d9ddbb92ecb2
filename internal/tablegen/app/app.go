package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"shipping-table-generator/internal/tablegen/app/config"
	"shipping-table-generator/internal/tablegen/domain"
	"shipping-table-generator/internal/tablegen/infras/csvfile"
	"shipping-table-generator/internal/tablegen/infras/totalexpress"
	"shipping-table-generator/internal/tablegen/usecase"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// One output file per tier, generated in this order.
var tierOutputs = []struct {
	Tier domain.ServiceTier
	File string
}{
	{Tier: domain.TierStandard, File: "total_express_standard.csv"},
	{Tier: domain.TierExpress, File: "total_express_express.csv"},
}

type app struct {
	logger  *slog.Logger
	config  *config.Config
	usecase usecase.UseCase
	runID   string
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
) (*app, error) {
	declaredValue, err := decimal.NewFromString(cfg.Request.DeclaredValue)
	if err != nil {
		return nil, err
	}

	client := totalexpress.NewClient(
		cfg.Endpoint,
		cfg.Credentials.Username,
		cfg.Credentials.Password,
		cfg.Request.Timeout,
		cfg.Request.RetryWait,
		logger,
	)
	writer := csvfile.NewWriter(logger)
	pacer := rate.NewLimiter(rate.Every(cfg.Request.Delay), 1)

	uc := usecase.NewUseCase(
		client,
		writer,
		pacer,
		declaredValue,
		domain.Dimensions{
			HeightCm: cfg.Request.Dimensions.HeightCm,
			WidthCm:  cfg.Request.Dimensions.WidthCm,
			DepthCm:  cfg.Request.Dimensions.DepthCm,
		},
		logger,
	)

	return &app{
		logger:  logger,
		config:  cfg,
		usecase: uc,
		runID:   uuid.NewString(),
	}, nil
}

// Run generates the table for every tier in sequence and writes the run
// report next to the tables. A fatal abort stops the remaining tiers.
func (a *app) Run(ctx context.Context) error {
	logger := a.logger.With(slog.String("run_id", a.runID))

	if err := os.MkdirAll(a.config.Output.Dir, 0o755); err != nil {
		logger.Error("failed to create output directory", slog.String("dir", a.config.Output.Dir), slog.Any("error", err))
		return err
	}

	summaries := make([]*domain.RunSummary, 0, len(tierOutputs))

	for _, output := range tierOutputs {
		logger.Info("generating table", slog.String("tier", string(output.Tier)), slog.String("file", output.File))

		summary, err := a.usecase.GenerateTable(ctx, &domain.GenerateTableInput{
			RunID:      a.runID,
			Tier:       output.Tier,
			OutputPath: filepath.Join(a.config.Output.Dir, output.File),
		})
		if summary != nil {
			summaries = append(summaries, summary)
		}

		if err != nil {
			logger.Error("run aborted", slog.String("tier", string(output.Tier)), slog.Any("error", err))

			if reportErr := a.writeReport(summaries); reportErr != nil {
				logger.Error("failed to write run report", slog.Any("error", reportErr))
			}

			return err
		}
	}

	if err := a.writeReport(summaries); err != nil {
		logger.Error("failed to write run report", slog.Any("error", err))
		return err
	}

	logger.Info("all tables generated",
		slog.Int("total_rows", lo.SumBy(summaries, func(s *domain.RunSummary) int { return s.Succeeded })),
		slog.Int("total_failures", lo.SumBy(summaries, func(s *domain.RunSummary) int { return s.Failed })),
	)

	return nil
}
