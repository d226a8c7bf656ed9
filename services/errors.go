package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/group-stage/brackets"
)

// Ошибки движка турнира. Каждая операция возвращает одну из них (возможно, обёрнутую).
var (
	// AlreadyExists
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrPlayerNameConflict = errors.New("player already exists in this team")

	// NotFound
	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchNotFound = errors.New("match not found")

	// Бизнес-правила турнира
	ErrTeamLimitReached   = errors.New("the tournament already has the maximum number of teams")
	ErrNotEnoughTeams     = brackets.ErrNotEnoughTeams
	ErrMatchAlreadyPlayed = errors.New("match result is already recorded and cannot be changed")
	ErrInvalidScore       = errors.New("scores must be non-negative integers")
	ErrMatchNotPlayed     = errors.New("match result must be recorded before adding goals")
	ErrPlayerNotInMatch   = errors.New("player does not belong to either team of this match")

	// Валидация входных данных
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrInvalidLimit       = errors.New("limit must be a positive integer")

	// Аутентификация и отчёты
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrReportsDisabled      = errors.New("report storage is not configured")

	// StoreFailure: любая ошибка хранилища, не классифицированная выше
	ErrStoreFailure = errors.New("tournament store failure")
)

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}
