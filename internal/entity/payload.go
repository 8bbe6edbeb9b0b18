package entity

import "github.com/samdwyer/undercroft/internal/geom"

// Monster is the payload of a KindMonster thing.
type Monster struct {
	DefID string // gamedata enemy id
	Name  string
	Glyph rune
	Color string // hex colour, resolved by the renderer
}

// Container is the payload of a KindContainer thing.
type Container struct {
	DefID string
	Name  string
	Glyph rune
	Color string
	Items []string
}

// NewMonster creates a monster thing at p.
func NewMonster(p geom.Point, m Monster) *Thing {
	t := NewAt(KindMonster, p)
	t.Monster = &m
	return t
}

// NewContainer creates a container thing at p. Containers block movement.
func NewContainer(p geom.Point, c Container) *Thing {
	t := NewAt(KindContainer, p)
	t.Container = &c
	return t
}

// NewPlayer creates the player template. It has no position until placed.
func NewPlayer() *Thing {
	return New(KindPlayer)
}
