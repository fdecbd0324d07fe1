package ports

import (
	"context"

	"gridquest/internal/domain/plan"
)

// ActionOutcome reports the result of one real action attempt. Committed
// false with no error means the world rejected the action (cooldown, partial
// failure); network-level retries are the runner's own concern.
type ActionOutcome struct {
	Committed                bool
	FailureCode              string
	CooldownRemainingSeconds int
}

// ActionRunner performs the real side effect for a chosen action against the
// live game world. The executor only ever sees execute -> outcome.
type ActionRunner interface {
	ExecuteAction(ctx context.Context, agentID string, action plan.Action) (ActionOutcome, error)
}
