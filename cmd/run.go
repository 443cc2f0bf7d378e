package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/justinav/pamoka/internal/app"
	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/llm"
	"github.com/justinav/pamoka/internal/plan"
	"github.com/spf13/cobra"
)

// runApp opens the archive, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	store, err := archive.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	opts := app.Options{
		PlanRepo: store.PlanRepo(),
		Settings: store.Settings(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, store.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Plan generation will be unavailable; the archive still works.")
		provider = unavailableProvider{}
	} else {
		opts.ModelID = provider.ModelID()
	}
	opts.Session = plan.NewSession(provider, plan.DefaultConfig())

	return app.Run(opts)
}

// unavailableProvider stands in when no API key is configured so the
// archive side of the TUI stays usable.
type unavailableProvider struct{}

func (unavailableProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return nil, &llm.ErrProviderUnavailable{Err: fmt.Errorf("no API key configured")}
}

func (unavailableProvider) ModelID() string { return "" }
