package t2048

import "github.com/vovakirdan/tui-2048/internal/engine"

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// TileAnimation represents an animated tile.
type TileAnimation struct {
	Value    int          // Tile value before the move
	From     engine.Point // Start cell
	To       engine.Point // End cell
	Progress float64      // 0.0 → 1.0
	Merged   bool         // Result of a merge (for visual effect)
	IsNew    bool         // New tile (for pop effect)
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// PendingTile stores info about a tile to be animated after slide.
type PendingTile struct {
	At    engine.Point
	Value int
}

// startSlideAnimation builds one animation per move record.
func (g *Game) startSlideAnimation(moves engine.MoveMap, spawned *PendingTile) {
	g.animations = g.animations[:0]
	moves.Each(func(m engine.Move) {
		g.animations = append(g.animations, TileAnimation{
			Value:  int(m.Value),
			From:   m.From,
			To:     m.To,
			Merged: m.Merged,
		})
	})
	g.pendingNewTile = spawned
	g.animating = true
	g.animationPhase = PhaseSlide
	g.animationTicks = 0
}

// startPopAnimation initializes pop animation for a new tile.
func (g *Game) startPopAnimation(tile PendingTile) {
	g.animations = []TileAnimation{{
		Value: tile.Value,
		From:  tile.At,
		To:    tile.At,
		IsNew: true,
	}}
	g.animating = true
	g.animationPhase = PhasePop
	g.animationTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	var duration int
	switch g.animationPhase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	default:
		g.clearAnimation()
		return false
	}

	progress := float64(g.animationTicks) / float64(duration)
	if progress > 1.0 {
		progress = 1.0
	}
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	if g.animationTicks >= duration {
		g.finishAnimation()
		return g.animating
	}
	return true
}

// finishAnimation completes the current animation phase.
func (g *Game) finishAnimation() {
	if g.animationPhase == PhaseSlide && g.pendingNewTile != nil {
		tile := *g.pendingNewTile
		g.pendingNewTile = nil
		g.startPopAnimation(tile)
		return
	}
	g.clearAnimation()
}

// clearAnimation drops any running animation.
func (g *Game) clearAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animations = nil
	g.animationTicks = 0
	g.pendingNewTile = nil
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition returns the fractional cell the tile is drawn at.
func (a *TileAnimation) interpolatePosition() (row, col float64) {
	t := easeOutQuad(a.Progress)
	row = float64(a.From.Row) + float64(a.To.Row-a.From.Row)*t
	col = float64(a.From.Col) + float64(a.To.Col-a.From.Col)*t
	return row, col
}
