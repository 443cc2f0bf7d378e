package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/export"
	"github.com/spf13/cobra"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage archived lesson plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived plans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		plans, err := store.PlanRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list plans: %w", err)
		}
		if len(plans) == 0 {
			fmt.Println("Archive is empty.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %s\n", "ID", "Created", "Title")
		fmt.Println(strings.Repeat("─", 90))
		for _, sp := range plans {
			fmt.Printf("%-36s  %-19s  %s\n",
				sp.ID, sp.CreatedAt.Local().Format("2006-01-02 15:04:05"), sp.Title)
		}
		return nil
	},
}

var plansShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		sp, err := store.PlanRepo().Get(cmd.Context(), args[0])
		if errors.Is(err, archive.ErrNotFound) {
			return fmt.Errorf("no archived plan with id %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("get plan: %w", err)
		}

		fmt.Println(sp.Title)
		fmt.Println()
		p := sp.Plan
		printPlan(&p)
		return nil
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.PlanRepo().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete plan: %w", err)
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var plansExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export an archived plan to PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		compact, _ := cmd.Flags().GetBool("compact")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		fontSize, _ := cmd.Flags().GetString("font-size")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		sp, err := store.PlanRepo().Get(cmd.Context(), args[0])
		if errors.Is(err, archive.ErrNotFound) {
			return fmt.Errorf("no archived plan with id %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("get plan: %w", err)
		}

		cfg := export.DefaultConfig()
		cfg.Compact = compact
		for _, id := range exclude {
			cfg.Include[export.SectionID(id)] = false
		}
		if fontSize != "" {
			fs := export.FontSize(fontSize)
			switch fs {
			case export.FontSmall, export.FontMedium, export.FontLarge:
			default:
				return fmt.Errorf("invalid font size %q (small, medium, large)", fontSize)
			}
			for _, id := range export.SectionOrder {
				cfg.FontSizes[id] = fs
			}
		}

		p := sp.Plan
		if output == "" {
			output = export.Filename(p.Topic())
		}

		res, err := export.Export(export.SectionsFromPlan(&p), cfg, output)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d pages, %d sections)\n", res.Path, res.Pages, res.Sections)
		return nil
	},
}

// openStore resolves the DB path and opens the archive.
func openStore(cmd *cobra.Command) (*archive.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	store, err := archive.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return store, nil
}

func init() {
	plansExportCmd.Flags().StringP("output", "o", "", "Output PDF path (default derived from topic)")
	plansExportCmd.Flags().Bool("compact", false, "Compact layout with reduced margins")
	plansExportCmd.Flags().StringSlice("exclude", nil, "Section IDs to exclude (e.g. motivation,ediary)")
	plansExportCmd.Flags().String("font-size", "", "Font size for all sections (small, medium, large)")

	plansCmd.AddCommand(plansListCmd)
	plansCmd.AddCommand(plansShowCmd)
	plansCmd.AddCommand(plansDeleteCmd)
	plansCmd.AddCommand(plansExportCmd)
}
