package ecs

// Query selects a subset of active entities. All specified predicates are
// ANDed together; an empty Query matches every active entity.
type Query struct {
	All  []Kind   // entity must hold every listed kind
	Any  []Kind   // entity must hold at least one listed kind
	None []Kind   // entity must hold none of the listed kinds
	Tags []string // entity must carry every listed tag
}

// Match reports whether the entity satisfies the query. Inactive entities
// never match, regardless of the predicates.
func (q Query) Match(e *Entity) bool {
	if !e.Active {
		return false
	}
	if len(q.All) > 0 && !e.HasAll(q.All) {
		return false
	}
	if len(q.Any) > 0 && !e.HasAny(q.Any) {
		return false
	}
	if len(q.None) > 0 && e.HasAny(q.None) {
		return false
	}
	if len(q.Tags) > 0 && !e.HasAllTags(q.Tags) {
		return false
	}
	return true
}
