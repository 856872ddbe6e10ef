package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-automata/internal/runner"
)

var (
	flagSurveyTicks   uint64
	flagSurveyWorkers int
	flagSurveyPresets []string
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Run every ant preset in parallel and report highway ticks",
	Long: `Run each ant preset headless, one worker per preset, until its highway
appears or the tick limit is reached. Detections are stored in the database.

Examples:
  automata survey
  automata survey --ticks 20000 --workers 2
  automata survey --presets s8,4pix`,
	Run: runSurvey,
}

func init() {
	surveyCmd.Flags().Uint64Var(&flagSurveyTicks, "ticks", 12000, "Tick limit per preset")
	surveyCmd.Flags().IntVar(&flagSurveyWorkers, "workers", 0, "Parallel workers (0 = one per CPU)")
	surveyCmd.Flags().StringSliceVar(&flagSurveyPresets, "presets", nil, "Presets to run (default: all)")
}

func runSurvey(_ *cobra.Command, _ []string) {
	logger := newLogger("runner")

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runner.Survey(ctx, flagSurveyPresets, flagSurveyTicks, flagSurveyWorkers, recorderStore(store), logger)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("  %-6s  %-8s  %-10s  %s\n", "Preset", "Ticks", "Population", "Highway")
	fmt.Printf("  %-6s  %-8s  %-10s  %s\n", "------", "-----", "----------", "-------")
	for _, r := range results {
		highway := "-"
		if r.Detected() {
			highway = fmt.Sprintf("tick %d", r.Highway)
		}
		fmt.Printf("  %-6s  %-8d  %-10d  %s\n", r.Preset, r.Tick, r.Population, highway)
	}
}
