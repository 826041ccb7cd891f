package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/hexmatch-go/internal/api/request"
	"github.com/mcoot/hexmatch-go/internal/api/response"
	"github.com/mcoot/hexmatch-go/internal/model"
)

var errNoGame = errors.New("no game given and no current game; start one with 'hexmatch game new'")

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
		Long: `Game commands. Commands that act on a game use the game ID given as an
argument or --game flag, falling back to the last game started with
'game new'.`,
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameCollectCmd())
	cmd.AddCommand(newGameAbandonCmd())
	cmd.AddCommand(newGameHintCmd())
	cmd.AddCommand(newGameAutoPlayCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post("/api/v1/games", request.CreateGameRequest{Mode: mode}, &result); err != nil {
				return err
			}

			if err := cfg.SaveCurrentGame(result.ID); err != nil {
				return fmt.Errorf("failed to remember game: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "welcome", "Level: welcome, hexagon, moat, pit")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a game's board and score",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameArg(args, "")
			if err != nil {
				return err
			}

			var result response.Game

			if err := client.Get(gamePath(id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	var game string

	cmd := &cobra.Command{
		Use:   "place <x> <y>",
		Short: "Place the piece in hand on an empty cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cellCommand(cmd, game, "place", args)
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Game ID (default: current game)")

	return cmd
}

func newGameCollectCmd() *cobra.Command {
	var game string

	cmd := &cobra.Command{
		Use:   "collect <x> <y>",
		Short: "Collect a finished piece for its points",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cellCommand(cmd, game, "collect", args)
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Game ID (default: current game)")

	return cmd
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon [id]",
		Short: "Abandon a game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameArg(args, "")
			if err != nil {
				return err
			}

			if err := client.Delete(gamePath(id)); err != nil {
				return err
			}

			if err := cfg.ClearCurrentGame(id); err != nil {
				return fmt.Errorf("failed to forget game: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Game abandoned")
			return nil
		},
	}
}

func newGameHintCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "hint [id]",
		Short: "Ask a bot where to place the piece in hand",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameArg(args, "")
			if err != nil {
				return err
			}

			var result response.Hint

			if err := client.Get(gamePath(id)+"/hint?strategy="+url.QueryEscape(strategy), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", model.BotStrategyGreedy, "Bot strategy: "+strings.Join(model.ValidBotStrategies(), ", "))

	return cmd
}

func newGameAutoPlayCmd() *cobra.Command {
	var (
		strategy string
		turns    int
	)

	cmd := &cobra.Command{
		Use:   "autoplay [id]",
		Short: "Let a bot take turns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameArg(args, "")
			if err != nil {
				return err
			}

			var result response.AutoPlay

			req := request.AutoPlayRequest{Strategy: strategy, Turns: turns}
			if err := client.Post(gamePath(id)+"/autoplay", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", model.BotStrategyGreedy, "Bot strategy: "+strings.Join(model.ValidBotStrategies(), ", "))
	cmd.Flags().IntVar(&turns, "turns", 1, "Number of turns to play (stops early at game over)")

	return cmd
}

func cellCommand(cmd *cobra.Command, game, action string, args []string) error {
	id, err := gameArg(nil, game)
	if err != nil {
		return err
	}

	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}

	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	var result response.TurnResult

	if err := client.Post(gamePath(id)+"/"+action, request.PositionRequest{X: &x, Y: &y}, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.Print(result)
	return nil
}

// gameArg picks the game to act on: a positional argument, then the --game
// flag, then the remembered current game
func gameArg(args []string, flag string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if flag != "" {
		return flag, nil
	}
	id, err := cfg.CurrentGame()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errNoGame
	}
	return id, nil
}

func gamePath(id string) string {
	return "/api/v1/games/" + id
}
