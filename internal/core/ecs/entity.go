package ecs

import (
	"sort"

	"github.com/google/uuid"
)

// EntityID is a UUID string. Identifiers are unique for the process lifetime
// and never reused after removal.
type EntityID string

// Entity is an identifier plus a component map (at most one component per
// kind), an unordered tag set, and an active flag. Inactive entities are
// invisible to every query and therefore to every system update.
type Entity struct {
	ID     EntityID
	Active bool

	components map[Kind]Component
	tags       map[string]struct{}
}

func newEntity() *Entity {
	return &Entity{
		ID:         EntityID(uuid.NewString()),
		Active:     true,
		components: make(map[Kind]Component, 4),
		tags:       make(map[string]struct{}, 2),
	}
}

// Component returns the attached component of the given kind, or nil.
func (e *Entity) Component(kind Kind) Component {
	return e.components[kind]
}

func (e *Entity) Has(kind Kind) bool {
	_, ok := e.components[kind]
	return ok
}

func (e *Entity) HasAll(kinds []Kind) bool {
	for _, k := range kinds {
		if !e.Has(k) {
			return false
		}
	}
	return true
}

func (e *Entity) HasAny(kinds []Kind) bool {
	for _, k := range kinds {
		if e.Has(k) {
			return true
		}
	}
	return false
}

// Kinds returns the attached component kinds in ascending order.
func (e *Entity) Kinds() []Kind {
	out := make([]Kind, 0, len(e.components))
	for k := range e.components {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (e *Entity) ComponentCount() int { return len(e.components) }

func (e *Entity) AddTag(tag string) { e.tags[tag] = struct{}{} }

func (e *Entity) RemoveTag(tag string) { delete(e.tags, tag) }

func (e *Entity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

func (e *Entity) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

// Tags returns the entity's tags in lexical order.
func (e *Entity) Tags() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
