package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/export"
	"github.com/justinav/pamoka/internal/llm"
	"github.com/justinav/pamoka/internal/plan"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lesson plan without the TUI",
	Long:  "Generates a lesson plan from flags and prints it, optionally saving it to the archive.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := plan.PromptInput{}
		in.Grade, _ = cmd.Flags().GetString("grade")
		in.Subject, _ = cmd.Flags().GetString("subject")
		in.Topic, _ = cmd.Flags().GetString("topic")
		in.Goal, _ = cmd.Flags().GetString("goal")
		in.Activities, _ = cmd.Flags().GetString("activities")
		in.GeneralNotes, _ = cmd.Flags().GetString("notes")
		in.EvaluationType, _ = cmd.Flags().GetString("eval-type")
		in.CustomEvaluationType, _ = cmd.Flags().GetString("eval-custom")
		in.EvaluationDescription, _ = cmd.Flags().GetString("eval-desc")

		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetBool("save")

		prompt, err := plan.BuildPrompt(in)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		store, err := archive.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer store.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, store.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		session := plan.NewSession(provider, plan.DefaultConfig())
		raw, err := session.Generate(ctx, prompt, true)
		if err != nil {
			return err
		}

		p, err := plan.Parse(raw)
		if err != nil {
			return err
		}

		if asJSON {
			out, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			printPlan(p)
		}

		if save {
			saved, err := store.PlanRepo().Save(ctx, p)
			if err != nil {
				return fmt.Errorf("save plan: %w", err)
			}
			fmt.Printf("\nSaved to archive: %s (%s)\n", saved.Title, saved.ID)
		}
		return nil
	},
}

// printPlan writes the plan as labeled sections.
func printPlan(p *plan.LessonPlan) {
	sep := strings.Repeat("─", 60)
	for _, sec := range export.SectionsFromPlan(p) {
		fmt.Println(sep)
		fmt.Println(sec.Title)
		fmt.Println(sep)
		fmt.Println(sec.Body)
		fmt.Println()
	}
}

func init() {
	generateCmd.Flags().String("grade", "", "Class/grade (required)")
	generateCmd.Flags().String("subject", "", "Subject (required)")
	generateCmd.Flags().String("topic", "", "Lesson topic (required)")
	generateCmd.Flags().String("goal", "", "Lesson goal")
	generateCmd.Flags().String("activities", "", "Additional ideas or activities")
	generateCmd.Flags().String("notes", "", "General notes about the class")
	generateCmd.Flags().String("eval-type", "", "Evaluation type ("+strings.Join(plan.EvaluationTypes, ", ")+")")
	generateCmd.Flags().String("eval-custom", "", "Custom evaluation type (with --eval-type kita)")
	generateCmd.Flags().String("eval-desc", "", "Evaluation description")
	generateCmd.Flags().Bool("json", false, "Print the plan as JSON")
	generateCmd.Flags().Bool("save", false, "Save the generated plan to the archive")
}
