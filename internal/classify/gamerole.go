package classify

import (
	"github.com/cloudflare/ahocorasick"

	"leadqual-engine/internal/normalize"
)

// Titles containing any of these (after normalization) are treated as
// game-development roles; everything else short-circuits out of the
// pipeline before enrichment or the oracle spend a thing.
var gameRoleKeywords = []string{
	"game", "unreal", "unity", "gameplay", "designer", "producer", "3d", "2d",
	"artist", "ui", "ux", "vfx", "fx", "animator", "render", "graphics",
	"engine", "engineer", "tools", "rig", "rigging", "technical art",
	"lighting", "animation", "pipeline", "concept", "level", "narrative",
	"technical animator", "technical artist",
}

// GameRoleGate is the cheap keyword gate in front of the whole pipeline.
type GameRoleGate struct {
	matcher *ahocorasick.Matcher
}

func NewGameRoleGate() *GameRoleGate {
	return &GameRoleGate{matcher: ahocorasick.NewStringMatcher(gameRoleKeywords)}
}

// IsGameRole reports whether the normalized title mentions any game-dev
// keyword. Substring semantics, same as the service-mapping scan.
func (g *GameRoleGate) IsGameRole(title string) bool {
	t := normalize.Title(title)
	if t == "" {
		return false
	}
	return len(g.matcher.Match([]byte(t))) > 0
}
