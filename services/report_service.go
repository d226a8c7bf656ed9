package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/group-stage/models"
	"github.com/Dosada05/group-stage/storage"
)

const reportContentType = "application/json"

type ReportService interface {
	// Export uploads a JSON snapshot of the tournament (tables, scorers and every match) to object storage.
	Export(ctx context.Context) (*storage.UploadResult, error)
}

type reportService struct {
	tx           *TxManager
	standings    StandingsService
	results      ResultService
	uploader     storage.ObjectUploader
	scorersLimit int
	now          func() time.Time
	logger       *slog.Logger
}

// NewReportService returns a service whose Export fails with ErrReportsDisabled when uploader is nil.
func NewReportService(
	tx *TxManager,
	standings StandingsService,
	results ResultService,
	uploader storage.ObjectUploader,
	scorersLimit int,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		tx:           tx,
		standings:    standings,
		results:      results,
		uploader:     uploader,
		scorersLimit: scorersLimit,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *reportService) Export(ctx context.Context) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrReportsDisabled
	}

	generatedAt := s.now().UTC()
	report, err := s.build(ctx, generatedAt)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tournament report: %w", err)
	}

	key := storage.ReportKey(generatedAt)
	result, err := s.uploader.Upload(ctx, key, reportContentType, bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "report upload failed", slog.String("key", key), slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "report uploaded", slog.String("key", result.Key), slog.String("location", result.Location))
	return result, nil
}

// build loads the sections in parallel with writes held off, so tables, scorers and matches agree.
func (s *reportService) build(ctx context.Context, generatedAt time.Time) (*models.Report, error) {
	report := &models.Report{GeneratedAt: generatedAt.Format(time.RFC3339)}
	err := s.tx.HoldWrites(ctx, func(ctx context.Context) error {
		return s.loadSections(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) loadSections(ctx context.Context, report *models.Report) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		table, err := s.standings.Standings(gCtx)
		if err != nil {
			return err
		}
		report.Standings = table
		return nil
	})

	g.Go(func() error {
		scorers, err := s.standings.TopScorers(gCtx, s.scorersLimit)
		if err != nil {
			return err
		}
		report.TopScorers = scorers
		return nil
	})

	g.Go(func() error {
		matches, err := s.results.ListMatches(gCtx)
		if err != nil {
			return err
		}
		report.Matches = make([]models.Match, 0, len(matches))
		for _, m := range matches {
			report.Matches = append(report.Matches, *m)
		}
		return nil
	})

	return g.Wait()
}
