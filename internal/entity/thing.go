package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/undercroft/internal/geom"
)

// Thing is a single entity record. Capability fields are shared by every kind;
// kind-specific data hangs off the payload pointer selected by Kind.
type Thing struct {
	ID          uuid.UUID
	Kind        Kind
	Passable    bool
	Transparent bool
	Pos         geom.Point
	Visibility  Visibility

	Monster   *Monster   // set when Kind == KindMonster
	Container *Container // set when Kind == KindContainer
}

// New creates a thing of the given kind with its default capabilities.
func New(kind Kind) *Thing {
	t := &Thing{ID: uuid.New(), Kind: kind}
	switch kind {
	case KindFloor, KindStairsUp, KindStairsDown:
		t.Passable, t.Transparent = true, true
	case KindDoor:
		t.Passable = true
	case KindWall:
	case KindMonster, KindPlayer:
		t.Transparent = true
	case KindContainer:
		t.Transparent = true
	}
	return t
}

// NewAt creates a thing of the given kind at p.
func NewAt(kind Kind, p geom.Point) *Thing {
	t := New(kind)
	t.Pos = p
	return t
}

// Floor returns a passable, transparent floor tile at p.
func Floor(p geom.Point) *Thing { return NewAt(KindFloor, p) }

// Wall returns an impassable, opaque wall tile at p.
func Wall(p geom.Point) *Thing { return NewAt(KindWall, p) }

// Door returns a passable, opaque door fixture at p.
func Door(p geom.Point) *Thing { return NewAt(KindDoor, p) }

// Clone returns a deep copy with a fresh identity. Payloads are copied too,
// so mutating the clone never touches the original.
func (t *Thing) Clone() *Thing {
	c := *t
	c.ID = uuid.New()
	if t.Monster != nil {
		m := *t.Monster
		c.Monster = &m
	}
	if t.Container != nil {
		ct := *t.Container
		ct.Items = append([]string(nil), t.Container.Items...)
		c.Container = &ct
	}
	return &c
}

// Symbol returns the glyph to draw for this thing.
func (t *Thing) Symbol() rune {
	if t.Monster != nil && t.Monster.Glyph != 0 {
		return t.Monster.Glyph
	}
	if t.Container != nil && t.Container.Glyph != 0 {
		return t.Container.Glyph
	}
	return t.Kind.Symbol()
}
