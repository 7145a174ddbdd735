package services

import (
	"context"
	"fmt"
	"time"

	"scribe/server/modules/usage/domain/entities"
	"scribe/server/modules/usage/domain/repositories"
	"scribe/server/seedwork/apperror"
	"scribe/server/seedwork/infrastructure/events"
)

// UsageIncremented is published on the bus each time Consume records an
// extraction, for any interested observer (currently none subscribe; the
// housekeeping summary reads the store directly instead of accumulating
// from events, since it needs a total rather than a stream).
type UsageIncremented struct {
	UserID string
	Month  string
}

// planCap is the compile-time plan table (§4.E). A zero Monthly with
// Lifetime > 0 means the plan is capped lifetime instead of monthly.
type planCap struct {
	Lifetime int
	Monthly  int
}

var planCaps = map[string]planCap{
	"free":      {Lifetime: 5},
	"ltd":       {Monthly: 50},
	"fltd":      {Monthly: 100},
	"sub_basic": {Monthly: 50},
	"sub_pro":   {Monthly: 100},
}

// CheckResult is the outcome of a usage check (§4.E).
type CheckResult struct {
	Allowed bool
	Used    int
	Max     int
	Message string
}

// UsageGate checks and atomically increments per-user extract counters
// against plan limits (component E).
type UsageGate struct {
	repo     repositories.UsageRepository
	eventBus events.EventBus
}

func NewUsageGate(repo repositories.UsageRepository, eventBus events.EventBus) *UsageGate {
	return &UsageGate{repo: repo, eventBus: eventBus}
}

// Check reports whether the user may run one more extraction under their
// plan's cap. For "free" it sums extracts across all months; for paid
// plans it reads (and lazily creates) the current-month counter.
func (g *UsageGate) Check(ctx context.Context, userID, plan string) (*CheckResult, error) {
	cap, ok := planCaps[plan]
	if !ok {
		cap = planCaps["free"]
	}

	if cap.Lifetime > 0 {
		used, err := g.repo.SumAllTimeForUser(ctx, userID)
		if err != nil {
			return nil, apperror.Storage("failed to check usage", err)
		}
		if used >= cap.Lifetime {
			return &CheckResult{
				Allowed: false,
				Used:    used,
				Max:     cap.Lifetime,
				Message: fmt.Sprintf("Free plan limit reached (%d extracts). Upgrade to continue.", cap.Lifetime),
			}, nil
		}
		return &CheckResult{Allowed: true, Used: used, Max: cap.Lifetime}, nil
	}

	month := entities.CurrentMonth(time.Now())
	counter, err := g.repo.EnsureRow(ctx, userID, month)
	if err != nil {
		return nil, apperror.Storage("failed to check usage", err)
	}
	if counter.Extracts >= cap.Monthly {
		return &CheckResult{
			Allowed: false,
			Used:    counter.Extracts,
			Max:     cap.Monthly,
			Message: fmt.Sprintf("Monthly limit reached (%d extracts). Upgrade to continue.", cap.Monthly),
		}, nil
	}
	return &CheckResult{Allowed: true, Used: counter.Extracts, Max: cap.Monthly}, nil
}

// Enforce calls Check and translates a disallowed result into the §7
// QuotaError the handler layer expects.
func (g *UsageGate) Enforce(ctx context.Context, userID, plan string) error {
	result, err := g.Check(ctx, userID, plan)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return apperror.Quota("limit_reached", result.Message)
	}
	return nil
}

// Consume upserts and increments the current-month counter. Must be called
// only after a successful extraction — never before — so a failed
// extraction does not count (§4.E, §7 idempotence).
func (g *UsageGate) Consume(ctx context.Context, userID string) error {
	month := entities.CurrentMonth(time.Now())
	if err := g.repo.IncrementAtomic(ctx, userID, month); err != nil {
		return apperror.Storage("failed to record usage", err)
	}
	if g.eventBus != nil {
		_ = g.eventBus.Publish("usage.incremented", &UsageIncremented{UserID: userID, Month: month})
	}
	return nil
}
