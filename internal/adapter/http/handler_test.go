package httpadapter

import (
	"encoding/json"
	"errors"
	"testing"

	"gridquest/internal/app/executor"
	"gridquest/internal/app/planner"
	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestRequireAgent_FromHeader(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(agentIDHeader, "agent-1")

	agentID, err := requireAgent(ctx)
	if err != nil {
		t.Fatalf("requireAgent error: %v", err)
	}
	if agentID != "agent-1" {
		t.Fatalf("unexpected agent id: %q", agentID)
	}
}

func TestRequireAgent_MissingHeader(t *testing.T) {
	ctx := &app.RequestContext{}
	if _, err := requireAgent(ctx); err != ErrMissingAgentIDHeader {
		t.Fatalf("expected ErrMissingAgentIDHeader, got %v", err)
	}
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	code, _ := body["error"]["code"].(string)
	return code
}

func TestWriteError_InvalidStateKey(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, &plan.InvalidStateKeyError{Key: "warp_drive"})

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "invalid_state_key"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_Unreachable(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, planner.ErrUnreachable)

	if got, want := ctx.Response.StatusCode(), consts.StatusUnprocessableEntity; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "goal_unreachable"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_BudgetExceeded(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, &planner.BudgetExceededError{Expanded: 10, Budget: 10})

	if got, want := ctx.Response.StatusCode(), consts.StatusUnprocessableEntity; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "planning_budget_exceeded"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_ExecutionAborted(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, &executor.AbortedError{AgentID: "agent-1", Replans: 3})

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "execution_aborted"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_PortsErrors(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrNotFound)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	ctx = &app.RequestContext{}
	writeError(ctx, ports.ErrConflict)
	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestWriteError_UnknownErrorIsInternal(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, errors.New("boom"))

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "internal_error"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}
