// Package descriptor is the typed model of a game object descriptor: the script components and
// embedded components that make up one game object.
package descriptor

import (
	"github.com/argus-labs/godesc/pkg/ddf"
)

// EntryKind distinguishes the two kinds of game object entries.
type EntryKind string

const (
	KindComponent EntryKind = "component"
	KindEmbedded  EntryKind = "embedded"
)

// Component references an external script or component resource.
type Component struct {
	ID         string     `json:"id"`
	Component  string     `json:"component"`
	Position   Vector3    `json:"position"`
	Rotation   Quat       `json:"rotation"`
	Scale      Vector3    `json:"scale"`
	Properties []Property `json:"properties,omitempty"`

	Pos ddf.Position `json:"-"`
}

// Property returns the property override with the given id.
func (c *Component) Property(id string) (Property, bool) {
	for _, p := range c.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// EmbeddedComponent is a component defined inline. Data holds the serialized payload exactly as
// written; Payload is its decoded view.
type EmbeddedComponent struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Data     string  `json:"data"`
	Position Vector3 `json:"position"`
	Rotation Quat    `json:"rotation"`
	Scale    Vector3 `json:"scale"`
	Payload  Payload `json:"payload,omitempty"`

	Pos     ddf.Position `json:"-"`
	DataPos ddf.Position `json:"-"`
}

// GameObject is the root of a descriptor.
type GameObject struct {
	Name               string              `json:"name,omitempty"`
	Components         []Component         `json:"components"`
	EmbeddedComponents []EmbeddedComponent `json:"embedded_components"`

	order []entryRef
}

type entryRef struct {
	kind  EntryKind
	index int
}

// Entry is a view of one component or embedded component, in file order.
type Entry struct {
	Kind      EntryKind
	ID        string
	Position  Vector3
	Rotation  Quat
	Scale     Vector3
	Pos       ddf.Position
	Component *Component
	Embedded  *EmbeddedComponent
}

// AddComponent appends c and records it as the next entry.
func (g *GameObject) AddComponent(c Component) {
	g.ensureOrder()
	g.Components = append(g.Components, c)
	g.order = append(g.order, entryRef{kind: KindComponent, index: len(g.Components) - 1})
}

// AddEmbedded appends e and records it as the next entry.
func (g *GameObject) AddEmbedded(e EmbeddedComponent) {
	g.ensureOrder()
	g.EmbeddedComponents = append(g.EmbeddedComponents, e)
	g.order = append(g.order, entryRef{kind: KindEmbedded, index: len(g.EmbeddedComponents) - 1})
}

// ensureOrder materializes the default order when the slices were filled directly.
func (g *GameObject) ensureOrder() {
	if len(g.order) == len(g.Components)+len(g.EmbeddedComponents) {
		return
	}
	g.order = g.defaultOrder()
}

func (g *GameObject) defaultOrder() []entryRef {
	order := make([]entryRef, 0, len(g.Components)+len(g.EmbeddedComponents))
	for i := range g.Components {
		order = append(order, entryRef{kind: KindComponent, index: i})
	}
	for i := range g.EmbeddedComponents {
		order = append(order, entryRef{kind: KindEmbedded, index: i})
	}
	return order
}

// Entries returns every entry in file order. Objects built by filling the slices directly list
// components before embedded components.
func (g *GameObject) Entries() []Entry {
	order := g.order
	if len(order) != len(g.Components)+len(g.EmbeddedComponents) {
		order = g.defaultOrder()
	}

	entries := make([]Entry, 0, len(order))
	for _, r := range order {
		switch r.kind {
		case KindComponent:
			c := &g.Components[r.index]
			entries = append(entries, Entry{
				Kind: KindComponent, ID: c.ID, Position: c.Position, Rotation: c.Rotation, Scale: ScaleOrUnit(c.Scale),
				Pos: c.Pos, Component: c,
			})
		case KindEmbedded:
			e := &g.EmbeddedComponents[r.index]
			entries = append(entries, Entry{
				Kind: KindEmbedded, ID: e.ID, Position: e.Position, Rotation: e.Rotation, Scale: ScaleOrUnit(e.Scale),
				Pos: e.Pos, Embedded: e,
			})
		}
	}
	return entries
}

// Entry looks an entry up by id.
func (g *GameObject) Entry(id string) (Entry, bool) {
	for _, e := range g.Entries() {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// References lists every resource path the object uses, in entry order.
func (g *GameObject) References() []Reference {
	var refs []Reference
	for _, e := range g.Entries() {
		switch e.Kind {
		case KindComponent:
			refs = append(refs, Reference{
				Owner: e.ID, Field: "component", Kind: RefComponent, Path: e.Component.Component, Pos: e.Pos,
			})
		case KindEmbedded:
			if e.Embedded.Payload == nil {
				continue
			}
			for _, r := range e.Embedded.Payload.References() {
				r.Owner = e.ID
				r.Pos = e.Embedded.DataPos
				refs = append(refs, r)
			}
		}
	}
	return refs
}
