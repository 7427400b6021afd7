package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/engine"
	"github.com/aegislib/circulation/library/shell"
)

const (
	defaultRate            = 50
	maxRate                = 10_000
	defaultDuration        = 10 * time.Second
	defaultScenarioWeights = "80,20" // lending, browsing
	operationTimeout       = 5 * time.Second
	statsInterval          = 2 * time.Second

	scenarioLending  = "lending"
	scenarioBrowsing = "browsing"
)

var (
	errInvalidRate     = errors.New("rate must be between 1 and 10000 operations per second")
	errInvalidDuration = errors.New("duration must be positive")
	errInvalidWeights  = errors.New("invalid scenario weights")
	errNothingToLoad   = errors.New("load needs at least one copy and one member")
)

type loadConfig struct {
	Rate            int
	Duration        time.Duration
	ScenarioWeights [2]int
}

// loadStats is the outcome of one load run. Rejected counts refusals by a business rule,
// e.g. issuing a copy that is already issued; Failed counts everything else.
type loadStats struct {
	Requests          int64
	Succeeded         int64
	Rejected          int64
	Canceled          int64
	Failed            int64
	Elapsed           time.Duration
	RequestsPerSecond float64
}

// loadGenerator fires a weighted mix of circulation operations and queries at an engine at a fixed rate.
type loadGenerator struct {
	engine  *engine.Engine
	config  loadConfig
	copies  []core.BookCopy
	members []core.UserProfile
	random  *shell.LockedRand
	logger  shell.ContextualLogger

	requests  atomic.Int64
	succeeded atomic.Int64
	rejected  atomic.Int64
	canceled  atomic.Int64
	failed    atomic.Int64

	wg sync.WaitGroup
}

func newLoadCmd(s *settings) *cobra.Command {
	var (
		rate     int
		duration time.Duration
		weights  string
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Fire concurrent issue, return, renew and query operations at the seeded engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			scenarioWeights, err := parseScenarioWeights(weights)
			if err != nil {
				return err
			}

			cfg := loadConfig{Rate: rate, Duration: duration, ScenarioWeights: scenarioWeights}

			rt, err := openRuntime(cmd.Context(), s, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, rt.Close())
			}()

			lg, err := newLoadGenerator(rt.engine, cfg, rt.data.Copies, rt.data.Members, s.seed, rt.logger)
			if err != nil {
				return err
			}

			return printJSON(cmd, lg.Run(cmd.Context()))
		},
	}

	cmd.Flags().IntVar(&rate, "rate", defaultRate, "Operations per second")
	cmd.Flags().DurationVar(&duration, "duration", defaultDuration, "How long to generate load")
	cmd.Flags().StringVar(&weights, "scenario-weights", defaultScenarioWeights, "Comma-separated weights for lending,browsing; must sum to 100")

	return cmd
}

func newLoadGenerator(
	e *engine.Engine,
	cfg loadConfig,
	copies []core.BookCopy,
	members []core.UserProfile,
	seed int64,
	logger shell.ContextualLogger,
) (*loadGenerator, error) {

	if cfg.Rate <= 0 || cfg.Rate > maxRate {
		return nil, errInvalidRate
	}

	if cfg.Duration <= 0 {
		return nil, errInvalidDuration
	}

	if len(copies) == 0 || len(members) == 0 {
		return nil, errNothingToLoad
	}

	return &loadGenerator{
		engine:  e,
		config:  cfg,
		copies:  copies,
		members: members,
		random:  shell.NewLockedRand(seed),
		logger:  logger,
	}, nil
}

// Run generates load until the configured duration elapsed or ctx is done,
// then waits for in-flight operations.
func (lg *loadGenerator) Run(ctx context.Context) loadStats {
	ctx, cancel := context.WithTimeout(ctx, lg.config.Duration)
	defer cancel()

	start := time.Now()

	ticker := time.NewTicker(time.Second / time.Duration(lg.config.Rate))
	defer ticker.Stop()

	reporter := time.NewTicker(statsInterval)
	defer reporter.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case <-reporter.C:
			stats := lg.stats(time.Since(start))
			lg.logger.InfoContext(ctx, "load progress",
				"requests", stats.Requests,
				"requests_per_second", stats.RequestsPerSecond,
				"rejected", stats.Rejected,
				"failed", stats.Failed,
			)

		case <-ticker.C:
			lg.wg.Add(1)
			go lg.executeScenario(ctx)
		}
	}

	lg.wg.Wait()

	return lg.stats(time.Since(start))
}

func (lg *loadGenerator) executeScenario(ctx context.Context) {
	defer lg.wg.Done()

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	scenario := lg.selectScenario()

	var err error
	switch scenario {
	case scenarioLending:
		err = lg.runLendingScenario(opCtx)
	default:
		err = lg.runBrowsingScenario(opCtx)
	}

	lg.requests.Add(1)

	switch {
	case err == nil:
		lg.succeeded.Add(1)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		lg.canceled.Add(1)

	case errors.Is(err, core.ErrInvalidState),
		errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrValidation),
		errors.Is(err, core.ErrConflict):

		lg.rejected.Add(1)

	default:
		lg.failed.Add(1)
		lg.logger.ErrorContext(ctx, "load scenario failed", "scenario", scenario, "error", err.Error())
	}
}

func (lg *loadGenerator) selectScenario() string {
	if lg.random.Intn(100) < lg.config.ScenarioWeights[0] {
		return scenarioLending
	}

	return scenarioBrowsing
}

func (lg *loadGenerator) runLendingScenario(ctx context.Context) error {
	bookCopy := lg.copies[lg.random.Intn(len(lg.copies))]

	switch n := lg.random.Intn(100); {
	case n < 50:
		member := lg.members[lg.random.Intn(len(lg.members))]
		_, err := lg.engine.Issue(ctx, bookCopy.ID, member.LibraryID)
		return err

	case n < 85:
		_, err := lg.engine.Return(ctx, bookCopy.ID)
		return err

	default:
		_, err := lg.engine.Renew(ctx, bookCopy.ID)
		return err
	}
}

func (lg *loadGenerator) runBrowsingScenario(ctx context.Context) error {
	bookCopy := lg.copies[lg.random.Intn(len(lg.copies))]

	switch lg.random.Intn(3) {
	case 0:
		_, err := lg.engine.FindCopiesByQuery(ctx, bookCopy.ID)
		return err

	case 1:
		_, err := lg.engine.HistoryForCopy(ctx, bookCopy.ID)
		return err

	default:
		_, err := lg.engine.BookAvailability(ctx, bookCopy.BookID)
		return err
	}
}

func (lg *loadGenerator) stats(elapsed time.Duration) loadStats {
	stats := loadStats{
		Requests:  lg.requests.Load(),
		Succeeded: lg.succeeded.Load(),
		Rejected:  lg.rejected.Load(),
		Canceled:  lg.canceled.Load(),
		Failed:    lg.failed.Load(),
		Elapsed:   elapsed,
	}

	if elapsed > 0 {
		stats.RequestsPerSecond = float64(stats.Requests) / elapsed.Seconds()
	}

	return stats
}

func parseScenarioWeights(weights string) ([2]int, error) {
	var parsed [2]int

	parts := strings.Split(weights, ",")
	if len(parts) != len(parsed) {
		return parsed, fmt.Errorf("%w: expected 2 weights, got %d", errInvalidWeights, len(parts))
	}

	total := 0
	for i, part := range parts {
		weight, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return parsed, fmt.Errorf("%w: %q is not a number", errInvalidWeights, part)
		}

		if weight < 0 || weight > 100 {
			return parsed, fmt.Errorf("%w: %d out of range [0, 100]", errInvalidWeights, weight)
		}

		parsed[i] = weight
		total += weight
	}

	if total != 100 {
		return parsed, fmt.Errorf("%w: weights must sum to 100, got %d", errInvalidWeights, total)
	}

	return parsed, nil
}
