// Package performance drives a scrolling board against an audio player:
// one tick per beat, harvested keys played and recorded.
package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/steinway/internal/audio"
	"github.com/san-kum/steinway/internal/life"
)

// Observer is notified after every tick. Observers must not retain keys.
type Observer interface {
	OnTick(tick int, keys []int)
}

type Config struct {
	// Steps is the number of ticks to play; 0 means run until the context
	// is canceled.
	Steps int
	// Delay is the pause after each tick.
	Delay time.Duration
}

// Result is the record of one performance.
type Result struct {
	// Ticks holds the harvested key indices per tick, in play order.
	Ticks [][]int
	// Counts mirrors Ticks with the number of keys per tick, ready for
	// plotting and spectrum analysis.
	Counts []float64
	// FinalGeneration is the board's generation counter when playback
	// stopped.
	FinalGeneration uint64
}

// TotalKeys returns the number of notes played over the whole run.
func (r *Result) TotalKeys() int {
	n := 0
	for _, keys := range r.Ticks {
		n += len(keys)
	}
	return n
}

// MaxChord returns the largest number of keys struck on a single tick.
func (r *Result) MaxChord() int {
	max := 0
	for _, keys := range r.Ticks {
		if len(keys) > max {
			max = len(keys)
		}
	}
	return max
}

// Performance owns a board and a player for the duration of a run.
type Performance struct {
	board     *life.Board
	player    audio.Player
	observers []Observer
}

func New(board *life.Board, player audio.Player) *Performance {
	return &Performance{
		board:  board,
		player: player,
	}
}

func (p *Performance) AddObserver(o Observer) { p.observers = append(p.observers, o) }

// Board exposes the underlying board for rendering. Callers must not mutate
// it while Run is in flight.
func (p *Performance) Board() *life.Board { return p.board }

// Run plays ticks until the step limit is reached or ctx is canceled. The
// partial result is returned alongside ctx.Err() on cancellation.
func (p *Performance) Run(ctx context.Context) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p.run(ctx, Config{})
}

// RunWith is Run with explicit step and pacing configuration.
func (p *Performance) RunWith(ctx context.Context, cfg Config) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("steps must be non-negative, got %d", cfg.Steps)
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("delay must be non-negative, got %v", cfg.Delay)
	}
	return p.run(ctx, cfg)
}

func (p *Performance) validate() error {
	if p.board == nil {
		return fmt.Errorf("performance has no board")
	}
	if p.player == nil {
		return fmt.Errorf("performance has no player")
	}
	return nil
}

func (p *Performance) run(ctx context.Context, cfg Config) (*Result, error) {
	result := &Result{
		Ticks:  make([][]int, 0, cfg.Steps),
		Counts: make([]float64, 0, cfg.Steps),
	}

	for tick := 0; cfg.Steps == 0 || tick < cfg.Steps; tick++ {
		select {
		case <-ctx.Done():
			result.FinalGeneration = p.board.Generation()
			return result, ctx.Err()
		default:
		}

		keys := p.board.HarvestAndAdvance()
		p.player.PlayKeys(keys)

		result.Ticks = append(result.Ticks, keys)
		result.Counts = append(result.Counts, float64(len(keys)))

		for _, o := range p.observers {
			o.OnTick(tick, keys)
		}

		if cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				result.FinalGeneration = p.board.Generation()
				return result, ctx.Err()
			case <-time.After(cfg.Delay):
			}
		}
	}

	result.FinalGeneration = p.board.Generation()
	return result, nil
}
