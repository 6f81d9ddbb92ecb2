package csvfile

import (
	"encoding/csv"
	"log/slog"
	"os"
	"strconv"

	"shipping-table-generator/internal/tablegen/domain"
	"shipping-table-generator/internal/tablegen/usecase"

	"github.com/samber/lo"
)

var header = []string{"ZipCodeStart", "ZipCodeEnd", "WeightStart", "WeightEnd", "AbsoluteMoneyCost", "TimeCost"}

type writer struct {
	logger *slog.Logger
}

var _ usecase.TableWriter = (*writer)(nil)

func NewWriter(logger *slog.Logger) *writer {
	return &writer{logger: logger}
}

// WriteTable writes rows to path in production order. Money is rendered
// with two decimals and a dot separator regardless of locale.
func (w *writer) WriteTable(path string, rows []domain.OutputRow) error {
	logger := w.logger.With(slog.String("infra", "csvfile"), slog.String("path", path))

	file, err := os.Create(path)
	if err != nil {
		logger.Error("failed to create file", slog.Any("error", err))
		return err
	}
	defer file.Close()

	records := lo.Map(rows, func(row domain.OutputRow, _ int) []string {
		return []string{
			strconv.Itoa(row.ZipCodeStart),
			strconv.Itoa(row.ZipCodeEnd),
			strconv.Itoa(row.WeightStart),
			strconv.Itoa(row.WeightEnd),
			row.MoneyCost.StringFixed(2),
			strconv.Itoa(row.TimeDays),
		}
	})

	csvWriter := csv.NewWriter(file)

	if err := csvWriter.Write(header); err != nil {
		logger.Error("failed to write header", slog.Any("error", err))
		return err
	}

	if err := csvWriter.WriteAll(records); err != nil {
		logger.Error("failed to write records", slog.Any("error", err))
		return err
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		logger.Error("failed to flush", slog.Any("error", err))
		return err
	}

	logger.Info("table written", slog.Int("rows", len(records)))
	return nil
}
