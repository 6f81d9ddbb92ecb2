package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"shipping-table-generator/internal/tablegen/domain"

	goccy_json "github.com/goccy/go-json"
)

type runReport struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Summaries   []*domain.RunSummary `json:"summaries"`
}

// writeReport emits a machine-readable companion to the CSV tables: run id,
// per-tier summaries and every skipped cell with its error kind.
func (a *app) writeReport(summaries []*domain.RunSummary) error {
	path := filepath.Join(a.config.Output.Dir, "report.json")
	logger := a.logger.With(slog.String("run_id", a.runID), slog.String("path", path))

	file, err := os.Create(path)
	if err != nil {
		logger.Error("failed to create report file", slog.Any("error", err))
		return err
	}
	defer file.Close()

	report := runReport{
		RunID:       a.runID,
		GeneratedAt: time.Now().UTC(),
		Summaries:   summaries,
	}

	encoder := goccy_json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		logger.Error("failed to encode report", slog.Any("error", err))
		return err
	}

	logger.Info("run report written")
	return nil
}
