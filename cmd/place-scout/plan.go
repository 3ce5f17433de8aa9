// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the search queries a discovery run will issue",
	Long: `Plan expands the taxonomy (built-in, or --taxonomy) into the ordered list
of category and keyword queries that discover searches. With --output the
taxonomy and queries are saved to a YAML plan file for review.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("taxonomy", "", "YAML taxonomy file overriding the built-in one (default: taxonomy from config)")
	planCmd.Flags().String("output", "", "write the plan to this YAML file instead of stdout")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	taxFile, _ := cmd.Flags().GetString("taxonomy")
	if taxFile == "" {
		taxFile = viper.GetString("taxonomy")
	}
	output, _ := cmd.Flags().GetString("output")

	tax := plan.DefaultTaxonomy()
	if taxFile != "" {
		var err error
		tax, err = plan.LoadTaxonomy(taxFile)
		if err != nil {
			return err
		}
	}

	if output != "" {
		if err := plan.WritePlanFile(output, tax); err != nil {
			return fmt.Errorf("writing plan file: %w", err)
		}
		logger.Info("wrote plan", zap.String("path", output), zap.Int("queries", len(plan.Plan(tax))))
		return nil
	}
	return printPlan(os.Stdout, tax)
}

func printPlan(w io.Writer, tax plan.Taxonomy) error {
	queries := plan.Plan(tax)
	for i, q := range queries {
		if _, err := fmt.Fprintf(w, "%2d  %s\n", i+1, q); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d queries\n", len(queries))
	return err
}
