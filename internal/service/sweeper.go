package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/internal/pkg/log"
)

// SweepResult — итог обработки одной записи при массовом обходе.
type SweepResult struct {
	CredentialID uuid.UUID
	Refreshed    bool
	// Detail — краткая диагностика неудачи для оператора.
	// Токенов и тел ответов апстрима не содержит.
	Detail string
}

// pageFn отдаёт очередную страницу записей после курсора.
type pageFn func(ctx context.Context, after uuid.UUID, limit int) ([]models.Credential, error)

// SweepAll последовательно обновляет все неотозванные записи, постранично
// обходя хранилище по курсору. Неудача отдельной записи не прерывает обход:
// запись получает перенос попытки, обход продолжается. Прерывают обход
// только ошибки постраничной выборки и отмена контекста.
func (s *Service) SweepAll(ctx context.Context) ([]SweepResult, error) {
	const op = "service.sweeper.SweepAll"

	results, err := s.sweep(ctx, s.storage.CredentialsForRefresh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return results, nil
}

// SweepDue — вариант SweepAll только для записей с наступившим сроком.
// Срез фиксируется на момент старта обхода: записи, перенесённые вперёд
// по ходу обработки, повторно в этот обход не попадают.
func (s *Service) SweepDue(ctx context.Context) ([]SweepResult, error) {
	const op = "service.sweeper.SweepDue"

	dueBefore := time.Now().UTC()
	results, err := s.sweep(ctx, func(ctx context.Context, after uuid.UUID, limit int) ([]models.Credential, error) {
		return s.storage.CredentialsDueForRefresh(ctx, after, dueBefore, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return results, nil
}

// sweep — общий постраничный цикл обоих обходов. Записи обрабатываются
// строго по одной: ни конкурентных обращений к token-endpoint'у, ни
// конкурентных записей в хранилище один обход не порождает.
func (s *Service) sweep(ctx context.Context, page pageFn) ([]SweepResult, error) {
	start := time.Now()

	results := make([]SweepResult, 0)
	refreshed := 0

	var after uuid.UUID
	for {
		batch, err := page(ctx, after, s.cfg.BatchSize)
		if err != nil {
			return nil, err
		}

		if len(batch) == 0 {
			break
		}

		for i := range batch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			cred := batch[i]

			res := SweepResult{CredentialID: cred.ID}
			if _, err := s.RefreshCredential(ctx, &cred); err != nil {
				res.Detail = err.Error()
			} else {
				res.Refreshed = true
				refreshed++
			}

			results = append(results, res)
		}

		after = batch[len(batch)-1].ID
		if len(batch) < s.cfg.BatchSize {
			break
		}
	}

	sweepDuration.Observe(time.Since(start).Seconds())
	sweepEntries.Observe(float64(len(results)))

	log.From(ctx).Info("sweep_finished",
		slog.Int("processed", len(results)),
		slog.Int("refreshed", refreshed),
		slog.Int("failed", len(results)-refreshed),
		slog.Duration("took", time.Since(start)))

	return results, nil
}
