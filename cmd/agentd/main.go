package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	statictuning "gridquest/internal/adapter/catalog/static"
	httpadapter "gridquest/internal/adapter/http"
	metricsinmem "gridquest/internal/adapter/metrics/inmemory"
	gormrepo "gridquest/internal/adapter/repo/gorm"
	memrepo "gridquest/internal/adapter/repo/memory"
	simworld "gridquest/internal/adapter/world/sim"
	"gridquest/internal/app/catalog"
	"gridquest/internal/app/diagnostics"
	"gridquest/internal/app/executor"
	"gridquest/internal/app/planner"
	"gridquest/internal/app/ports"
	"gridquest/internal/app/replay"
	"gridquest/internal/app/stateview"
	"gridquest/internal/app/status"
	"gridquest/internal/domain/plan"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const demoAgentID = "demo-agent"

func main() {
	tuning, err := statictuning.Load(strings.TrimSpace(os.Getenv("GRIDQUEST_TUNING_FILE")))
	if err != nil {
		log.Fatalf("load tuning: %v", err)
	}

	registry, err := catalog.NewRegistry(catalog.DefaultKeySpace(), catalog.DefaultActions(tuning.ActionCosts))
	if err != nil {
		log.Fatalf("build action catalog: %v", err)
	}

	planRepo, eventRepo, txManager := mustBuildRepos()
	world := buildWorldFromEnv(tuning.Thresholds)
	kpiRecorder := metricsinmem.NewRecorder()

	plannerUC := planner.UseCase{
		Catalog:  registry,
		MaxNodes: intEnv("PLANNER_MAX_NODES", 0),
		MaxDepth: intEnv("PLANNER_MAX_DEPTH", 0),
		Metrics:  kpiRecorder,
	}

	h := httpadapter.Handler{
		ExecUC: executor.UseCase{
			Planner:    plannerUC,
			Snapshots:  world,
			Runner:     world,
			Plans:      planRepo,
			Events:     eventRepo,
			Tx:         txManager,
			Metrics:    kpiRecorder,
			MaxReplans: intEnv("EXECUTOR_MAX_REPLANS", 0),
			Now:        time.Now,
		},
		DiagUC: diagnostics.UseCase{
			Catalog:   registry,
			Planner:   plannerUC,
			Snapshots: world,
		},
		StatusUC: status.UseCase{Plans: planRepo, Snapshots: world},
		ReplayUC: replay.UseCase{Events: eventRepo},
		KPI:      kpiRecorder,
	}

	addr := strings.TrimSpace(os.Getenv("GRIDQUEST_LISTEN_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("gridquest agentd listening on %s (demo agent: %s)", addr, demoAgentID)
	s.Spin()
}

func mustBuildRepos() (ports.PlanRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("GRIDQUEST_DB_DSN"))
	if dsn == "" {
		log.Println("GRIDQUEST_DB_DSN not set, using in-memory repositories")
		store := memrepo.NewStore()
		return memrepo.NewPlanRepo(store), memrepo.NewEventRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("GRIDQUEST_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}

	planRepo := gormrepo.NewPlanRepo(db)
	if _, err := planRepo.GetByAgentID(context.Background(), demoAgentID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("probe plan_checkpoints: %v (did you run SQL migrations?)", err)
	}
	return planRepo, gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

func buildWorldFromEnv(thresholds stateview.Thresholds) *simworld.World {
	world := simworld.New(simworld.Config{
		Thresholds: thresholds,
		Cooldowns:  cooldownsEnv("WORLD_ACTION_COOLDOWNS"),
	})
	world.SeedAgent(demoAgentID, map[plan.Key]plan.Value{
		stateview.KeyHP:                plan.IntValue(intEnv("DEMO_AGENT_HP", 100)),
		stateview.KeyMaxHP:             plan.IntValue(intEnv("DEMO_AGENT_MAX_HP", 100)),
		stateview.KeyInventoryUsed:     plan.IntValue(0),
		stateview.KeyInventoryCapacity: plan.IntValue(intEnv("DEMO_AGENT_INVENTORY_CAPACITY", 30)),
		stateview.KeyResourceCount:     plan.IntValue(intEnv("DEMO_AGENT_RESOURCE_COUNT", 5)),
		catalog.KeyPosition:            plan.PointValue(plan.Point{X: 0, Y: 0}),
		catalog.KeyAtBank:              plan.BoolValue(true),
	})
	return world
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// cooldownsEnv parses "gather_ore=30,fight_monster=60" into per-action
// cooldown durations in seconds.
func cooldownsEnv(key string) map[string]time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	out := map[string]time.Duration{}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			continue
		}
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil || n <= 0 {
			continue
		}
		out[name] = time.Duration(n) * time.Second
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
