package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boardfeed/boardfeed/internal/cache"
	"github.com/boardfeed/boardfeed/internal/config"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Manage tracked boards",
}

var boardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if len(cfg.Boards) == 0 {
			fmt.Println("No boards tracked.")
			return nil
		}
		for _, b := range cfg.Boards {
			state := " "
			if b.Enabled {
				state = "*"
			}
			fmt.Printf("%s %-20s %s\n", state, b.Name, b.URL)
		}
		return nil
	},
}

var boardsAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Track a new board",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.AddBoard(config.Board{Name: args[0], URL: args[1], Enabled: true}); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Tracking %s.\n", args[0])
		return nil
	},
}

var boardsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Stop tracking a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.RemoveBoard(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		// Drop the cached record too; its images age out via prune.
		store, err := cache.Open(config.CachePath())
		if err == nil {
			defer store.Close()
			if err := store.Delete(context.Background(), args[0]); err != nil {
				fmt.Printf("  [warn] %v\n", err)
			}
		}

		fmt.Printf("Stopped tracking %s.\n", args[0])
		return nil
	},
}

var imagesCmd = &cobra.Command{
	Use:   "images on|off",
	Short: "Toggle the image display preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch args[0] {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg.SetImagesEnabled(on)
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Image display %s.\n", args[0])
		return nil
	},
}

func init() {
	boardsCmd.AddCommand(boardsListCmd)
	boardsCmd.AddCommand(boardsAddCmd)
	boardsCmd.AddCommand(boardsRemoveCmd)
}
