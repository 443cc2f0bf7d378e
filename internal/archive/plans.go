package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/justinav/pamoka/internal/plan"
)

// ErrNotFound is returned when no archive entry exists for an id.
var ErrNotFound = errors.New("saved plan not found")

// SavedPlan is one archived lesson-plan snapshot. Entries are immutable
// after creation: saving again always creates a new entry.
type SavedPlan struct {
	ID        string
	Title     string
	Plan      plan.LessonPlan
	CreatedAt time.Time
}

// PlanRepo manages archived lesson plans.
type PlanRepo interface {
	// Save archives a snapshot of p. The title is synthesized from the
	// plan's topic and the current date. Never overwrites.
	Save(ctx context.Context, p *plan.LessonPlan) (*SavedPlan, error)

	// Get returns the archived snapshot for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*SavedPlan, error)

	// List returns all entries, newest first. Rows that fail to decode
	// are skipped and logged, never surfaced.
	List(ctx context.Context) ([]*SavedPlan, error)

	// Delete removes the entry for id. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}

type planRepo struct {
	db *sql.DB
}

// SynthesizeTitle derives an archive title from a topic and creation time.
func SynthesizeTitle(topic string, at time.Time) string {
	if topic == "" {
		topic = "Pamokos planas"
	}
	return fmt.Sprintf("%s (%s)", topic, at.Format("2006-01-02"))
}

func (r *planRepo) Save(ctx context.Context, p *plan.LessonPlan) (*SavedPlan, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}

	now := time.Now()
	entry := &SavedPlan{
		ID:        uuid.NewString(),
		Title:     SynthesizeTitle(p.Topic(), now),
		Plan:      *p,
		CreatedAt: now,
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saved_plans (id, title, plan_json, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Title, string(body), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	return entry, nil
}

func (r *planRepo) Get(ctx context.Context, id string) (*SavedPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, plan_json, created_at FROM saved_plans WHERE id = ?`, id)

	entry, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *planRepo) List(ctx context.Context) ([]*SavedPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, plan_json, created_at FROM saved_plans ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var out []*SavedPlan
	for rows.Next() {
		entry, err := scanPlan(rows)
		if err != nil {
			// Corrupt row: degrade to "not there", keep the rest.
			fmt.Fprintf(os.Stderr, "warning: skipping unreadable saved plan: %v\n", err)
			continue
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *planRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*SavedPlan, error) {
	var entry SavedPlan
	var body, createdAt string

	if err := row.Scan(&entry.ID, &entry.Title, &body, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(body), &entry.Plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", entry.ID, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp for plan %s: %w", entry.ID, err)
	}
	entry.CreatedAt = ts

	return &entry, nil
}
