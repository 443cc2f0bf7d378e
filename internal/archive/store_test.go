package archive

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/justinav/pamoka/internal/llm"
	"github.com/justinav/pamoka/internal/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePlan(topic string) *plan.LessonPlan {
	return &plan.LessonPlan{
		GeneralNotes: "pastabos",
		LessonOverview: plan.LessonOverview{
			Topic: topic, Goal: "tikslas", Competencies: "kompetencijos", Evaluation: "vertinimas",
		},
		LessonActivities: plan.LessonActivities{Gifted: "a", General: "b", Struggling: "c"},
		Homework:         plan.Homework{Purpose: "p", Gifted: "a", General: "b", Struggling: "c"},
		EDiaryEntry: plan.EDiaryEntry{
			Classwork: "k", Homework: "n", Notes: "p",
			ThematicPlanning: "t", IndividualWork: "i",
		},
		Motivation: "šaunuolis",
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestPlanSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlanRepo()
	ctx := context.Background()

	p := samplePlan("Trupmenų sudėtis")
	saved, err := repo.Save(ctx, p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("saved plan has no id")
	}
	if saved.Title == "" {
		t.Fatal("saved plan has no title")
	}

	got, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.Plan, *p) {
		t.Errorf("loaded plan differs:\ngot  %+v\nwant %+v", got.Plan, *p)
	}
}

func TestPlanGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.PlanRepo().Get(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPlanDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlanRepo()
	ctx := context.Background()

	saved, err := repo.Save(ctx, samplePlan("Tema"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repo.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: err = %v, want ErrNotFound", err)
	}

	// Deleting a missing id is a no-op.
	if err := repo.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestPlanSaveNeverOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlanRepo()
	ctx := context.Background()

	first, err := repo.Save(ctx, samplePlan("Ta pati tema"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := repo.Save(ctx, samplePlan("Ta pati tema"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("same-topic saves share an id")
	}

	plans, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("list returned %d plans, want 2", len(plans))
	}
	// Newest first.
	if plans[0].ID != second.ID {
		t.Errorf("list order: first = %s, want %s", plans[0].ID, second.ID)
	}
}

func TestPlanListSkipsCorruptRows(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlanRepo()
	ctx := context.Background()

	if _, err := repo.Save(ctx, samplePlan("Gera")); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := s.DB().Exec(
		`INSERT INTO saved_plans (id, title, plan_json, created_at) VALUES (?, ?, ?, ?)`,
		"corrupt-id", "Sugadinta", "{not json", time.Now().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("inject corrupt row: %v", err)
	}

	plans, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("list returned %d plans, want 1 (corrupt skipped)", len(plans))
	}
	if plans[0].Plan.Topic() != "Gera" {
		t.Errorf("surviving plan topic = %q", plans[0].Plan.Topic())
	}
}

func TestSynthesizeTitle(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	if got := SynthesizeTitle("Trupmenos", at); got != "Trupmenos (2026-03-14)" {
		t.Errorf("got %q", got)
	}
	if got := SynthesizeTitle("", at); got != "Pamokos planas (2026-03-14)" {
		t.Errorf("fallback title = %q", got)
	}
}

func TestSettings(t *testing.T) {
	s := openTestStore(t)
	settings := s.Settings()
	ctx := context.Background()

	_, ok, err := settings.Get(ctx, KeyWelcomeShown)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("unset key reported as present")
	}

	if err := settings.Set(ctx, KeyWelcomeShown, "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := settings.Get(ctx, KeyWelcomeShown)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != "1" {
		t.Errorf("got (%q, %v), want (1, true)", v, ok)
	}

	// Upsert replaces.
	if err := settings.Set(ctx, KeyWelcomeShown, "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, _, _ = settings.Get(ctx, KeyWelcomeShown)
	if v != "2" {
		t.Errorf("after upsert got %q, want 2", v)
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []llm.RequestEvent{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "plan", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "refine", InputTokens: 200, OutputTokens: 300, LatencyMs: 700, Success: false, ErrorMessage: "boom"},
	}
	for _, ev := range events {
		if err := repo.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent returned %d events, want 2", len(recent))
	}
	// Newest first.
	if recent[0].Purpose != "refine" {
		t.Errorf("first event purpose = %q, want refine", recent[0].Purpose)
	}
	if recent[0].Success {
		t.Error("failed event recorded as success")
	}

	full, err := repo.Get(ctx, recent[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if full.RequestBody != "req" || full.ResponseBody != "resp" {
		t.Errorf("bodies not round-tripped: %+v", full)
	}

	usage, err := repo.UsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("usage rows = %d, want 1", len(usage))
	}
	if usage[0].Calls != 2 || usage[0].InputTokens != 300 || usage[0].OutputTokens != 700 {
		t.Errorf("usage = %+v", usage[0])
	}
}
