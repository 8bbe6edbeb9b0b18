// Package entity provides the things that occupy a dungeon map: tiles,
// fixtures, monsters, containers and the player.
package entity

// Kind tags which category a Thing belongs to and which payload it carries.
type Kind int

const (
	KindFloor Kind = iota
	KindWall
	KindDoor
	KindStairsUp
	KindStairsDown
	KindMonster
	KindContainer
	KindPlayer
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "Floor"
	case KindWall:
		return "Wall"
	case KindDoor:
		return "Door"
	case KindStairsUp:
		return "StairsUp"
	case KindStairsDown:
		return "StairsDown"
	case KindMonster:
		return "Monster"
	case KindContainer:
		return "Container"
	case KindPlayer:
		return "Player"
	default:
		return "Unknown"
	}
}

// Symbol returns the default display symbol for a kind.
func (k Kind) Symbol() rune {
	switch k {
	case KindFloor:
		return '.'
	case KindWall:
		return '#'
	case KindDoor:
		return '+'
	case KindStairsUp:
		return '<'
	case KindStairsDown:
		return '>'
	case KindMonster:
		return 'm'
	case KindContainer:
		return '='
	case KindPlayer:
		return '@'
	default:
		return '?'
	}
}

// IsTile reports whether the kind lives in the tile layer.
func (k Kind) IsTile() bool {
	return k == KindFloor || k == KindWall
}

// IsFixture reports whether the kind lives in the fixture layer.
func (k Kind) IsFixture() bool {
	return k == KindDoor || k == KindStairsUp || k == KindStairsDown
}

// Visibility is what the player currently knows about a Thing.
type Visibility int

const (
	// VisibilityNone has never been seen, or is a monster out of sight.
	VisibilityNone Visibility = iota
	// VisibilityFog was seen before but is not lit this turn.
	VisibilityFog
	// VisibilityVisible is lit this turn.
	VisibilityVisible
)

// String returns a human-readable visibility name.
func (v Visibility) String() string {
	switch v {
	case VisibilityNone:
		return "none"
	case VisibilityFog:
		return "fog"
	case VisibilityVisible:
		return "visible"
	default:
		return "unknown"
	}
}
