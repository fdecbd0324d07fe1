package replay

import (
	"context"
	"errors"
	"strings"

	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.AgentID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByAgentID(ctx, req.AgentID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{Events: events, Summary: summarize(events)}, nil
}

func filterByTimeWindow(events []plan.Event, from, to int64) []plan.Event {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]plan.Event, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func summarize(events []plan.Event) Summary {
	s := Summary{CountsByType: map[string]int{}}
	for _, evt := range events {
		s.CountsByType[evt.Type]++
		if id, ok := evt.Payload["plan_id"].(string); ok && id != "" {
			s.LastPlanID = id
		}
		switch evt.Type {
		case plan.EventStepCommitted:
			s.StepsCommitted++
		case plan.EventReplanRequested:
			s.Replans++
		case plan.EventGoalReached:
			s.GoalReached = true
			s.Aborted = false
		case plan.EventExecutionAborted:
			s.Aborted = true
			s.GoalReached = false
		}
	}
	return s
}
