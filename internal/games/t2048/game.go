package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Variant is one registered flavour of the game.
type Variant struct {
	ID    string
	Title string
	Mode  Mode
	Rows  int // 0 keeps the configured board size
	Cols  int
}

// Variants lists every registered 2048 flavour. They share the "2048" group.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Mode: ModeCampaign},
	{ID: "2048_endless", Title: "2048 (Endless)", Mode: ModeEndless},
	{ID: "2048_5x5", Title: "2048 (5x5 Endless)", Mode: ModeEndless, Rows: 5, Cols: 5},
	{ID: "2048_3x3", Title: "2048 (3x3 Endless)", Mode: ModeEndless, Rows: 3, Cols: 3},
}

// Game implements the 2048 puzzle game.
type Game struct {
	variant Variant
	cfg     config.T2048Config
	levels  []Level

	eng        *engine.Game
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	tick       uint64
	moves      int

	score         int
	levelIndex    int // Current level (0-indexed)
	currentTarget int // Current tile target
	spawn4Prob    float64

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int

	// Animation state
	prevBoard      *engine.Board
	lastMoves      engine.MoveMap
	lastSpawn      *PendingTile
	animations     []TileAnimation
	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	pendingNewTile *PendingTile

	startLevel int // per-game override of selectedStartLevel
}

// Package-level settings applied on the next Reset
var (
	selectedStartLevel int
	configPath         string
	difficultyPreset   config.DifficultyPreset
)

// SetStartLevel sets the starting level (1-based). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetLevel makes the next Reset of this game start at level (1-based).
// Unlike SetStartLevel it does not touch other games.
func (g *Game) SetLevel(level int) {
	g.startLevel = level
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// loadConfig returns the active configuration with the preset applied.
func loadConfig() config.T2048Config {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		cfg = config.DefaultT2048Config()
	}
	config.ApplyT2048Preset(&cfg, difficultyPreset)
	return cfg
}

// Size returns the grid the variant plays on. Variants without a fixed
// size use the board of the active configuration.
func (v Variant) Size() (rows, cols int) {
	if v.Rows > 0 && v.Cols > 0 {
		return v.Rows, v.Cols
	}
	cfg := loadConfig()
	return cfg.Board.Rows, cfg.Board.Cols
}

// New creates a new campaign mode 2048 game.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless() *Game {
	return NewVariant(Variants[1])
}

// NewVariant creates a game for the given variant.
func NewVariant(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, "2048", func() registry.Game {
			return NewVariant(v)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Mode returns the campaign/endless mode.
func (g *Game) Mode() Mode {
	return g.variant.Mode
}

// Board returns a copy of the current board.
func (g *Game) Board() *engine.Board {
	if g.eng == nil {
		return nil
	}
	return g.eng.Board().Copy()
}

// LastMoves returns the move records of the most recent accepted move.
func (g *Game) LastMoves() engine.MoveMap {
	return g.lastMoves
}

// Progress returns the 1-based campaign level and its tile target.
// Endless games report level 0 and no target.
func (g *Game) Progress() (level, target int) {
	if g.variant.Mode != ModeCampaign {
		return 0, 0
	}
	return g.levelIndex + 1, g.currentTarget
}

// LastSpawn returns the tile spawned by the most recent accepted move.
func (g *Game) LastSpawn() (engine.Point, int, bool) {
	if g.lastSpawn == nil {
		return engine.Point{}, 0, false
	}
	return g.lastSpawn.At, g.lastSpawn.Value, true
}

// CanMove reports whether sliding toward dir would change the board.
// Unknown directions never move.
func (g *Game) CanMove(dir engine.Direction) bool {
	if g.eng == nil {
		return false
	}
	ok, err := g.eng.TryMoveBlocks(dir)
	return err == nil && ok
}

// Move applies one slide outside the tick loop, for hosts without a frame
// clock. A pending level clear is resolved first.
func (g *Game) Move(dir engine.Direction) bool {
	if g.eng == nil {
		return false
	}
	if g.levelCleared {
		g.advanceLevel()
	}
	if g.gameOver || g.won {
		return false
	}
	moved := g.processMove(dir)
	g.clearAnimation()
	return moved
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = loadConfig()
	if g.variant.Rows > 0 && g.variant.Cols > 0 {
		g.cfg.Board.Rows = g.variant.Rows
		g.cfg.Board.Cols = g.variant.Cols
	}
	g.cfg.Board.StartTiles = min(g.cfg.Board.StartTiles, g.cfg.Board.Rows*g.cfg.Board.Cols)
	g.levels = levelsFrom(g.cfg)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.eng = g.newEngine(g.cfg.Board.Rows, g.cfg.Board.Cols)

	g.tick = 0
	g.moves = 0
	g.score = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.lastMoves = engine.MoveMap{}
	g.lastSpawn = nil
	g.clearAnimation()

	// Apply selected start level (campaign only)
	start := g.startLevel
	g.startLevel = 0
	if start == 0 {
		start = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	if g.variant.Mode == ModeCampaign && start > 0 && start <= len(g.levels) {
		g.levelIndex = start - 1
	} else {
		g.levelIndex = 0
	}

	g.loadLevel()

	for range g.cfg.Board.StartTiles {
		g.spawnTile()
	}

	g.checkScreenSize()
}

// newEngine builds the engine with the configured merge cap. Config
// validation guarantees a positive size; a failure falls back to 4x4.
func (g *Game) newEngine(rows, cols int) *engine.Game {
	var policy engine.MergePolicy = engine.SumPolicy{}
	if g.cfg.Merge.MaxTile > 0 {
		policy = engine.CapPolicy{Max: engine.Block(g.cfg.Merge.MaxTile)}
	}
	opts := []engine.Option{
		engine.WithPolicy(policy),
		engine.WithRand(g.rng),
		engine.WithMergeListener(g.onMerge),
	}
	eng, err := engine.NewGame(rows, cols, opts...)
	if err != nil {
		eng, _ = engine.NewGame(4, 4, opts...)
	}
	return eng
}

// onMerge adds every merged tile to the score.
func (g *Game) onMerge(merged engine.Block, _ engine.Point, _, _ engine.Source) {
	g.score += int(merged)
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	if g.variant.Mode == ModeEndless || len(g.levels) == 0 {
		g.currentTarget = 0 // No target in endless
		g.spawn4Prob = spawn4Share(g.cfg.Spawn)
		return
	}

	if g.levelIndex >= len(g.levels) {
		g.levelIndex = len(g.levels) - 1
	}
	level := g.levels[g.levelIndex]
	g.currentTarget = level.Target
	g.spawn4Prob = level.Spawn4
}

// spawnTable returns the values and weights for the next spawn.
func (g *Game) spawnTable() ([]engine.Block, []float64) {
	switch {
	case g.currentTarget > 0:
		return classicSpawn(g.spawn4Prob)
	case g.difficulty != nil && g.difficulty.IsEnabled():
		return classicSpawn(g.difficulty.Spawn4(g.spawn4Prob, g.score, g.moves))
	default:
		values := make([]engine.Block, len(g.cfg.Spawn.Values))
		for i, v := range g.cfg.Spawn.Values {
			values[i] = engine.Block(v)
		}
		return values, g.cfg.Spawn.Weights
	}
}

func classicSpawn(p4 float64) ([]engine.Block, []float64) {
	return []engine.Block{2, 4}, []float64{1 - p4, p4}
}

// spawn4Share is the fraction of spawn weight carried by the value 4.
func spawn4Share(s config.SpawnConfig) float64 {
	total, fours := 0.0, 0.0
	for i, w := range s.Weights {
		total += w
		if i < len(s.Values) && s.Values[i] == 4 {
			fours += w
		}
	}
	if total <= 0 {
		return 0
	}
	return fours / total
}

// spawnTile spawns a new tile in a random empty cell. A full board spawns
// nothing. Config validation rules out a bad spawn table, so an engine
// error here is a bug and panics.
func (g *Game) spawnTile() (*PendingTile, bool) {
	values, weights := g.spawnTable()
	p, ok, err := g.eng.SpawnBlockWeighted(values, weights)
	if err != nil {
		panic(fmt.Errorf("t2048: spawn: %w", err))
	}
	if !ok {
		return nil, false
	}
	v, _ := g.eng.BlockAt(p)
	return &PendingTile{At: p, Value: int(v)}, true
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := g.boardSize()
	minW := boardW + 4
	minH := boardH + hudHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// inputDirection maps the pressed action to a slide direction.
func inputDirection(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.Up, true
	case in.Has(core.ActionDown):
		return engine.Down, true
	case in.Has(core.ActionLeft):
		return engine.Left, true
	case in.Has(core.ActionRight):
		return engine.Right, true
	}
	return 0, false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && (g.gameOver || g.won) {
		// Will be reset by platform
		return core.StepResult{State: g.State()}
	}

	dir, hasMove := inputDirection(in)

	// A new move cuts the running animation short
	if g.animating {
		if hasMove {
			g.clearAnimation()
		} else {
			g.updateAnimation()
		}
	}

	// Handle level cleared pause
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.cfg.Campaign.LevelClearTicks {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	// Don't process moves if game over or won
	if g.gameOver || g.won || !hasMove {
		return core.StepResult{State: g.State()}
	}

	moved := g.processMove(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// processMove handles a move in the given direction.
// It reports whether the board changed.
func (g *Game) processMove(dir engine.Direction) bool {
	before := g.eng.Board().Copy()
	moves, err := g.eng.MoveBlocks(dir)
	if err != nil || moves.Empty() {
		// Board didn't change - don't spawn new tile
		return false
	}

	g.moves++
	g.prevBoard = before
	g.lastMoves = moves
	g.lastSpawn = nil

	// Check for level target (campaign only)
	if g.currentTarget > 0 && int(g.eng.Board().MaxBlock()) >= g.currentTarget {
		g.levelCleared = true
		g.levelClearTicks = 0
		g.startSlideAnimation(moves, nil)
		return true
	}

	spawned, _ := g.spawnTile()
	g.lastSpawn = spawned
	g.startSlideAnimation(moves, spawned)

	if g.eng.Stopped() {
		g.gameOver = true
	}
	return true
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= len(g.levels)-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	// Keep current board and score - just update target

	// The clearing move never spawned; a stuck board ends the run
	if g.eng.Stopped() {
		g.gameOver = true
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
