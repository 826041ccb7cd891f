package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hexmatch-go/internal/api"
	"github.com/mcoot/hexmatch-go/internal/api/response"
	"github.com/mcoot/hexmatch-go/internal/factory"
	"github.com/mcoot/hexmatch-go/internal/model"
	sqlitestorage "github.com/mcoot/hexmatch-go/internal/storage/sqlite"
	"github.com/mcoot/hexmatch-go/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	gameFile   string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "hexmatch-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/hexmatch")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		gameFile:   filepath.Join(t.TempDir(), "game"),
	}
}

func (r *cliRunner) command(args ...string) *exec.Cmd {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--game-file", r.gameFile,
		"--output", "json",
	}, args...)

	return exec.Command(r.binaryPath, fullArgs...)
}

func (r *cliRunner) run(args ...string) (string, error) {
	output, err := r.command(args...).CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	app      *factory.App
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T, cfg factory.Config) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg.Logger = logger

	app, err := factory.New(cfg)
	require.NoError(t, err)

	// Create routers
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		StatsService:   app.StatsService,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BoardService:   app.BoardService,
		StatsService:   app.StatsService,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, api.DefaultServerConfig(), logger)
	server.OnShutdown(app.HubManager.Close)

	// Start server
	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		app:  app,
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func decode[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

// firstEmptyCell returns the first playable cell with no piece in board order
func firstEmptyCell(t *testing.T, b response.Board) response.Cell {
	t.Helper()
	for _, c := range b.Cells {
		if !c.Void && c.Piece == nil {
			return c
		}
	}
	t.Fatal("board has no empty cell")
	return response.Cell{}
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "ok", decode[healthResponse](t, output).Status)
}

func TestCLI_PlayGame(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "new", "--mode", "hexagon")
	require.NoError(t, err, "output: %s", output)
	game := decode[response.Game](t, output)
	require.NotEmpty(t, game.ID)
	assert.Equal(t, "hexagon", game.Mode)
	assert.Equal(t, string(model.PhaseAwaitingPlacement), game.Phase)
	require.NotNil(t, game.CurrentPiece)
	t.Logf("Created game: %s", game.ID)

	// Every placement scores at least a triangle's points and uses up a turn
	for turn := 1; turn <= 5; turn++ {
		cell := firstEmptyCell(t, game.Board)

		output, err = cli.run("game", "place", strconv.Itoa(cell.X), strconv.Itoa(cell.Y))
		require.NoError(t, err, "turn %d place: %s", turn, output)
		result := decode[response.TurnResult](t, output)

		assert.Equal(t, turn, result.Turn)
		assert.GreaterOrEqual(t, result.PointsAwarded, 10)
		assert.Equal(t, game.Score+result.PointsAwarded, result.Score)
		t.Logf("Turn %d: placed at (%d,%d) for %d points", turn, cell.X, cell.Y, result.PointsAwarded)

		game = result.Game
	}

	// The remembered game is the one we played
	output, err = cli.run("game", "get")
	require.NoError(t, err, "output: %s", output)
	current := decode[response.Game](t, output)
	assert.Equal(t, game.ID, current.ID)
	assert.Equal(t, game.Score, current.Score)
	assert.Equal(t, 5, current.Turn)

	output, err = cli.run("stats")
	require.NoError(t, err, "output: %s", output)
	stats := map[string]int64{}
	for _, e := range decode[response.Stats](t, output).Stats {
		stats[e.Key] = e.Value
	}
	assert.Equal(t, int64(1), stats[model.StatGamesPlayed])
	assert.Equal(t, int64(game.Score), stats["highscore_hexagon"])
}

func TestCLI_BotPlays(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "new")
	require.NoError(t, err, "output: %s", output)
	game := decode[response.Game](t, output)

	output, err = cli.run("game", "hint", "--strategy", "random")
	require.NoError(t, err, "output: %s", output)
	hint := decode[response.Hint](t, output)
	assert.True(t, slices.ContainsFunc(game.Board.Cells, func(c response.Cell) bool {
		return c.X == hint.Position.X && c.Y == hint.Position.Y && !c.Void && c.Piece == nil
	}), "hint %s is not an empty cell", hint.Position)

	// A tutorial board can't fill up in fewer turns than it has cells
	output, err = cli.run("game", "autoplay", "--turns", "10")
	require.NoError(t, err, "output: %s", output)
	result := decode[response.AutoPlay](t, output)
	assert.Len(t, result.Moves, 10)
	assert.Equal(t, 10, result.Game.Turn)
	assert.GreaterOrEqual(t, result.Score, 100)
}

func TestCLI_GameAbandon(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "new")
	require.NoError(t, err, "output: %s", output)
	game := decode[response.Game](t, output)

	output, err = cli.run("game", "abandon")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "Game abandoned", decode[messageResponse](t, output).Message)

	output, err = cli.run("game", "get", game.ID)
	require.Error(t, err)
	assert.Contains(t, decode[errorResponse](t, output).Error.Message, "GAME_NOT_FOUND")
}

func TestCLI_WatchGame(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "new")
	require.NoError(t, err, "output: %s", output)
	game := decode[response.Game](t, output)

	var stdout bytes.Buffer
	watch := cli.command("watch", game.ID)
	watch.Stdout = &stdout
	require.NoError(t, watch.Start())

	require.Eventually(t, func() bool {
		hub := ts.app.HubManager.GetHub(model.GameID(game.ID))
		return hub != nil && hub.ClientCount() == 1
	}, 5*time.Second, 20*time.Millisecond)

	output, err = cli.run("game", "place", "2", "2")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "abandon")
	require.NoError(t, err, "output: %s", output)

	done := make(chan error, 1)
	go func() { done <- watch.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		_ = watch.Process.Kill()
		t.Fatal("watch did not exit after the game was abandoned")
	}

	var types []model.EventType
	for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
		types = append(types, decode[model.Event](t, line).Type)
	}
	require.NotEmpty(t, types)
	assert.Contains(t, types, model.EventTurnComplete)
	assert.Equal(t, model.EventGameAbandoned, types[len(types)-1])
}

func TestCLI_GameSurvivesRestart(t *testing.T) {
	sqliteCfg := sqlitestorage.DefaultConfig()
	sqliteCfg.Path = filepath.Join(t.TempDir(), "hexmatch.db")
	cfg := factory.Config{
		StorageType:  factory.StorageTypeSQLite,
		SQLiteConfig: &sqliteCfg,
	}

	ts := startTestServer(t, cfg)
	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "new", "--mode", "pit")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "place", "4", "2")
	require.NoError(t, err, "output: %s", output)
	before := decode[response.TurnResult](t, output).Game
	ts.shutdown()

	ts = startTestServer(t, cfg)
	defer ts.shutdown()
	cli.serverURL = ts.addr

	output, err = cli.run("game", "get")
	require.NoError(t, err, "output: %s", output)
	after := decode[response.Game](t, output)

	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.Turn, after.Turn)
	assert.Equal(t, before.Board, after.Board)
	require.NotNil(t, after.CurrentPiece)
	assert.Equal(t, before.CurrentPiece.Value, after.CurrentPiece.Value)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// No current game yet
	output, err := cli.run("game", "get")
	require.Error(t, err)
	assert.Contains(t, decode[errorResponse](t, output).Error.Message, "no current game")

	output, err = cli.run("game", "new", "--mode", "maze")
	require.Error(t, err)
	assert.Contains(t, decode[errorResponse](t, output).Error.Message, "UNKNOWN_LEVEL")

	output, err = cli.run("game", "new")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "place", "1", "1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "place", "1", "1")
	require.Error(t, err)
	assert.Contains(t, decode[errorResponse](t, output).Error.Message, "INVALID_PLACEMENT")

	output, err = cli.run("game", "collect", "1", "1")
	require.Error(t, err)
	assert.Contains(t, decode[errorResponse](t, output).Error.Message, "NOT_COLLECTIBLE")
}
