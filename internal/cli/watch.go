package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/hexmatch-go/internal/model"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [id]",
		Short: "Stream a game's events",
		Long: `Connect to the game's websocket endpoint and print its events as they happen.

Events include:
  - placed_with_merge / placed_without_merge: A piece was placed
  - removed: A piece was merged away
  - collected: A finished piece was collected
  - turn_complete: The turn ended, with the new score and next piece
  - game_over: No move is left
  - game_abandoned: The game was deleted; the stream ends

With --output json each event is printed as one JSON line.
Press Ctrl+C to disconnect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gameArg(args, "")
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watchGame(ctx, id, cmd.OutOrStdout())
		},
	}
}

func watchGame(ctx context.Context, id string, w io.Writer) error {
	url, err := client.WebsocketURL(gamePath(id) + "/events")
	if err != nil {
		return err
	}

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 10 * time.Second,
	}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return handshakeError(resp, err)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Closing the connection unblocks the read loop on Ctrl+C
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	out := NewOutput(cfg.Output, w)
	if cfg.Output != OutputJSON {
		out.printf("Watching game %s\n", id)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if cfg.Output != OutputJSON {
					out.println("Disconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		if cfg.Output == OutputJSON {
			out.println(string(data))
			continue
		}

		var ev model.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			out.printf("%s\n", data)
			continue
		}
		out.Print(ev)
	}
}

// handshakeError reports a refused upgrade using the API's error body when
// there is one
func handshakeError(resp *http.Response, err error) error {
	var errResp ErrorResponse
	if resp.Body != nil {
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error.Code != "" {
			errResp.Error.Status = resp.StatusCode
			return &errResp.Error
		}
	}
	if errors.Is(err, websocket.ErrBadHandshake) {
		return fmt.Errorf("HTTP %d: websocket handshake refused", resp.StatusCode)
	}
	return fmt.Errorf("connection failed: %w", err)
}
