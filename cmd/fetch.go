package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boardfeed/boardfeed/internal/config"
)

var flagForce bool

var fetchCmd = &cobra.Command{
	Use:   "fetch [board...]",
	Short: "Fetch boards once and exit",
	Long: `Run one fetch-and-prefetch pass for the given boards (default: all
enabled boards) and print what is now cached. Suitable for cron or any
environment that may kill long-running processes: all remote work runs
under timeouts and partial image progress is resumed on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		orch, store, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		boards := args
		if len(boards) == 0 {
			boards = cfg.BoardNames()
		}
		if len(boards) == 0 {
			return fmt.Errorf("no boards configured; try: boardfeed boards add <name> <url>")
		}

		ctx := context.Background()
		for _, board := range boards {
			res := orch.GetEntry(ctx, board, flagForce)
			if res.Items == nil {
				fmt.Printf("%-20s no data (fetch failed, no cache)\n", board)
				continue
			}

			done := 0
			for _, it := range res.Items {
				if it.ImagesDownloaded {
					done++
				}
			}
			fmt.Printf("%-20s %d posts, captured %s, images %d/%d\n",
				board, len(res.Items), res.CapturedAt.Format("2006-01-02 15:04"),
				done, len(res.Items))
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&flagForce, "force", false, "refetch even when the cache is fresh")
}
