// Package games holds the outcome generators for every game type. A generator
// turns a uniform randomness source and game parameters into a win/loss
// decision with a payout multiplier; the settlement engine does everything
// else (funds, aggregates, history).
package games

import (
	"fmt"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Params carries game-specific inputs chosen by the player
type Params map[string]any

// Outcome is the resolved result of one wager. WonAmount credited by the
// engine is floor(bet * Multiplier); a loss has Multiplier 0, a push
// Multiplier 1 (stake refunded).
type Outcome struct {
	Won        bool
	Push       bool
	Multiplier float64
	Detail     map[string]any
}

// Result maps the outcome onto the recorded settlement result
func (o Outcome) Result() entity.Result {
	switch {
	case o.Won:
		return entity.ResultWin
	case o.Push:
		return entity.ResultPush
	default:
		return entity.ResultLoss
	}
}

// Generator produces outcomes for one game type
type Generator interface {
	// GameType identifies the game
	GameType() entity.GameType

	// Generate draws an outcome for the given bet parameters
	Generate(rng coreport.Rand, params Params) (Outcome, error)
}

// Registry maps game types to their generators
type Registry struct {
	generators map[entity.GameType]Generator
}

// NewRegistry creates a registry with the given generators
func NewRegistry(generators ...Generator) *Registry {
	r := &Registry{generators: make(map[entity.GameType]Generator, len(generators))}
	for _, g := range generators {
		r.generators[g.GameType()] = g
	}
	return r
}

// Get returns the generator for a game type
func (r *Registry) Get(gameType entity.GameType) (Generator, error) {
	g, ok := r.generators[gameType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidGameType, gameType)
	}
	return g, nil
}

// stringParam extracts a required string parameter
func stringParam(params Params, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%w: missing parameter %q", errs.ErrInvalidFormat, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter %q must be a string", errs.ErrInvalidFormat, key)
	}
	return s, nil
}

// floatParam extracts a required numeric parameter
func floatParam(params Params, key string) (float64, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %q", errs.ErrInvalidFormat, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: parameter %q must be a number", errs.ErrInvalidFormat, key)
	}
}
