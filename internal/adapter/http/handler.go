package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"gridquest/internal/app/diagnostics"
	"gridquest/internal/app/executor"
	"gridquest/internal/app/planner"
	"gridquest/internal/app/ports"
	"gridquest/internal/app/replay"
	"gridquest/internal/app/status"
	"gridquest/internal/domain/plan"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const agentIDHeader = "X-Agent-ID"

var ErrMissingAgentIDHeader = errors.New("missing x-agent-id header")

type Handler struct {
	ExecUC   executor.UseCase
	DiagUC   diagnostics.UseCase
	StatusUC status.UseCase
	ReplayUC replay.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	agent := s.Group("/api/agent")
	agent.POST("/goal", h.goal)
	agent.POST("/probe", h.probe)
	agent.POST("/facts/check", h.checkFacts)
	agent.POST("/status", h.status)
	agent.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type goalRequest struct {
	Conditions []plan.Condition `json:"conditions"`
}

type goalResponse struct {
	PlanID         string                  `json:"plan_id"`
	StepsCommitted int                     `json:"steps_committed"`
	Replans        int                     `json:"replans"`
	GoalReached    bool                    `json:"goal_reached"`
	FinalFacts     map[plan.Key]plan.Value `json:"final_facts"`
}

type checkFactsRequest struct {
	Facts map[plan.Key]plan.Value `json:"facts"`
}

// goal plans toward the submitted goal and executes the plan to completion,
// replanning on divergence. The call returns when the goal is reached or
// execution gives up.
func (h Handler) goal(c context.Context, ctx *app.RequestContext) {
	agentID, err := requireAgent(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body goalRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ExecUC.Execute(c, executor.Request{
		AgentID: agentID,
		Goal:    plan.NewGoal(body.Conditions...),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, goalResponse{
		PlanID:         resp.PlanID,
		StepsCommitted: resp.StepsCommitted,
		Replans:        resp.Replans,
		GoalReached:    resp.GoalReached,
		FinalFacts:     resp.Final.Facts(),
	})
}

// probe is the read-only twin of goal: it plans and classifies but never
// touches the world.
func (h Handler) probe(c context.Context, ctx *app.RequestContext) {
	agentID, err := requireAgent(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body goalRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.DiagUC.Probe(c, diagnostics.ProbeRequest{
		AgentID: agentID,
		Goal:    plan.NewGoal(body.Conditions...),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) checkFacts(_ context.Context, ctx *app.RequestContext) {
	var body checkFactsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	ctx.JSON(consts.StatusOK, h.DiagUC.CheckFacts(diagnostics.CheckRequest{Facts: body.Facts}))
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	agentID, err := requireAgent(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{AgentID: agentID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	agentID, err := requireAgent(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		AgentID:      agentID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requireAgent(ctx *app.RequestContext) (string, error) {
	agentID := strings.TrimSpace(string(ctx.GetHeader(agentIDHeader)))
	if agentID == "" {
		return "", ErrMissingAgentIDHeader
	}
	return agentID, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingAgentIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_agent_id", err.Error())
	case errors.Is(err, plan.ErrInvalidStateKey):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_state_key", err.Error())
	case errors.Is(err, planner.ErrUnreachable):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "goal_unreachable", err.Error())
	case errors.Is(err, planner.ErrBudgetExceeded):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "planning_budget_exceeded", err.Error())
	case errors.Is(err, executor.ErrExecutionAborted):
		writeErrorBody(ctx, consts.StatusConflict, "execution_aborted", err.Error())
	case errors.Is(err, executor.ErrInvalidRequest),
		errors.Is(err, diagnostics.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
