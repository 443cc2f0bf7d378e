package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/justinav/pamoka/internal/llm"
)

// LLMEvent is one recorded LLM request.
type LLMEvent struct {
	ID           int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventRepo appends and queries LLM request events.
// It implements llm.EventRecorder.
type EventRepo struct {
	db *sql.DB
}

var _ llm.EventRecorder = (*EventRepo)(nil)

// AppendLLMRequest records one LLM API call.
func (r *EventRepo) AppendLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339Nano),
		ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs,
		boolToInt(ev.Success), ev.ErrorMessage, ev.RequestBody, ev.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first. limit <= 0 means all.
func (r *EventRepo) Recent(ctx context.Context, limit int) ([]*LLMEvent, error) {
	q := `SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message
	      FROM llm_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []*LLMEvent
	for rows.Next() {
		var ev LLMEvent
		var ts string
		var success int
		if err := rows.Scan(&ev.ID, &ts, &ev.Provider, &ev.Model, &ev.Purpose,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &success, &ev.ErrorMessage); err != nil {
			return nil, err
		}
		ev.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		ev.Success = success != 0
		out = append(out, &ev)
	}
	return out, rows.Err()
}

// Get returns the full event for id, including request/response bodies.
func (r *EventRepo) Get(ctx context.Context, id int64) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body
		 FROM llm_events WHERE id = ?`, id)

	var ev LLMEvent
	var ts string
	var success int
	err := row.Scan(&ev.ID, &ts, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &success,
		&ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ev.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	ev.Success = success != 0

	return &ev, nil
}

// ModelUsage aggregates token counts for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// UsageByModel returns aggregated usage grouped by model, largest first.
func (r *EventRepo) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		 FROM llm_events GROUP BY model ORDER BY SUM(input_tokens) + SUM(output_tokens) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var mu ModelUsage
		if err := rows.Scan(&mu.Model, &mu.Calls, &mu.InputTokens, &mu.OutputTokens); err != nil {
			return nil, err
		}
		out = append(out, mu)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
