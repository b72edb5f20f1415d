package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// JackpotRepository implements persistence.JackpotRepository using GORM. The
// status transitions are conditional updates; a zero row count means another
// writer moved the row first.
type JackpotRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewJackpotRepository creates a new JackpotRepository instance
func NewJackpotRepository(db *gorm.DB, logger coreport.Logger) *JackpotRepository {
	return &JackpotRepository{db: db, logger: logger}
}

func (r *JackpotRepository) modelToEntity(m *model.JackpotGame) *entity.JackpotGame {
	return &entity.JackpotGame{
		ID:           m.ID,
		CreatorID:    m.CreatorID,
		CreatorBet:   m.CreatorBet,
		JoinerID:     m.JoinerID,
		JoinerBet:    m.JoinerBet,
		WinnerID:     m.WinnerID,
		Status:       entity.GameStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		JoinedAt:     m.JoinedAt,
		CountdownEnd: m.CountdownEnd,
		CompletedAt:  m.CompletedAt,
	}
}

func (r *JackpotRepository) wrapError(operation string, err error, gameID string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"game_id": gameID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
}

// Create inserts a new waiting game
func (r *JackpotRepository) Create(ctx context.Context, game *entity.JackpotGame) error {
	m := &model.JackpotGame{
		ID:         game.ID,
		CreatorID:  game.CreatorID,
		CreatorBet: game.CreatorBet,
		Status:     string(game.Status),
		CreatedAt:  game.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.wrapError("creating jackpot game", err, game.ID)
	}
	return nil
}

// FindOldestWaiting returns the oldest waiting game not created by the given
// account
func (r *JackpotRepository) FindOldestWaiting(ctx context.Context, excludeCreatorID string) (*entity.JackpotGame, error) {
	var m model.JackpotGame
	result := r.db.WithContext(ctx).
		Where("status = ? AND creator_id <> ?", string(entity.StatusWaiting), excludeCreatorID).
		Order("created_at ASC").
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNoGameAvailable
		}
		return nil, r.wrapError("finding waiting jackpot", result.Error, "")
	}
	return r.modelToEntity(&m), nil
}

// Claim transitions a waiting game to playing for the joiner. Conditional on
// the row still waiting so racing joiners resolve to exactly one winner.
func (r *JackpotRepository) Claim(ctx context.Context, gameID, joinerID string, joinerBet int64, joinedAt, countdownEnd time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.JackpotGame{}).
		Where("id = ? AND status = ?", gameID, string(entity.StatusWaiting)).
		Updates(map[string]any{
			"joiner_id":     joinerID,
			"joiner_bet":    joinerBet,
			"status":        string(entity.StatusPlaying),
			"joined_at":     joinedAt,
			"countdown_end": countdownEnd,
		})
	if result.Error != nil {
		return r.wrapError("claiming jackpot game", result.Error, gameID)
	}
	if result.RowsAffected == 0 {
		r.logger.Debug("Jackpot claim lost the race", map[string]any{
			"game_id":   gameID,
			"joiner_id": joinerID,
		})
		return errs.ErrNoGameAvailable
	}
	return nil
}

// GetByID retrieves a game row
func (r *JackpotRepository) GetByID(ctx context.Context, gameID string) (*entity.JackpotGame, error) {
	var m model.JackpotGame
	result := r.db.WithContext(ctx).Where("id = ?", gameID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNoGameAvailable
		}
		return nil, r.wrapError("getting jackpot game", result.Error, gameID)
	}
	return r.modelToEntity(&m), nil
}

// ListPlayingDue returns playing games whose countdown has elapsed
func (r *JackpotRepository) ListPlayingDue(ctx context.Context, now time.Time) ([]*entity.JackpotGame, error) {
	var ms []model.JackpotGame
	result := r.db.WithContext(ctx).
		Where("status = ? AND countdown_end <= ?", string(entity.StatusPlaying), now).
		Order("countdown_end ASC").
		Find(&ms)
	if result.Error != nil {
		return nil, r.wrapError("listing due jackpots", result.Error, "")
	}

	games := make([]*entity.JackpotGame, 0, len(ms))
	for i := range ms {
		games = append(games, r.modelToEntity(&ms[i]))
	}
	return games, nil
}

// ListStaleWaiting returns waiting games created before the cutoff
func (r *JackpotRepository) ListStaleWaiting(ctx context.Context, cutoff time.Time) ([]*entity.JackpotGame, error) {
	var ms []model.JackpotGame
	result := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entity.StatusWaiting), cutoff).
		Order("created_at ASC").
		Find(&ms)
	if result.Error != nil {
		return nil, r.wrapError("listing stale jackpots", result.Error, "")
	}

	games := make([]*entity.JackpotGame, 0, len(ms))
	for i := range ms {
		games = append(games, r.modelToEntity(&ms[i]))
	}
	return games, nil
}

// Complete marks a game finished with its winner. Conditional on the game
// still playing.
func (r *JackpotRepository) Complete(ctx context.Context, gameID, winnerID string, completedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.JackpotGame{}).
		Where("id = ? AND status = ?", gameID, string(entity.StatusPlaying)).
		Updates(map[string]any{
			"winner_id":    winnerID,
			"status":       string(entity.StatusCompleted),
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return r.wrapError("completing jackpot game", result.Error, gameID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoGameAvailable
	}
	return nil
}

// Void removes a stale waiting game. Conditional on the row still waiting so
// a refund can never race a successful claim.
func (r *JackpotRepository) Void(ctx context.Context, gameID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", gameID, string(entity.StatusWaiting)).
		Delete(&model.JackpotGame{})
	if result.Error != nil {
		return r.wrapError("voiding jackpot game", result.Error, gameID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoGameAvailable
	}
	return nil
}
