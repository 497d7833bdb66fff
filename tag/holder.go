package tag

import "github.com/lixenwraith/arsenal/core"

// Holder carries the tags of one scene object
// Parent redirects grouped hit boxes to the entity that owns them
type Holder struct {
	tags   Set
	parent core.Entity
}

// NewHolder creates a holder owning a copy of tags
func NewHolder(tags ...Tag) *Holder {
	return &Holder{tags: Of(tags...)}
}

// WithParent sets the owning entity for a grouped hit box
func (h *Holder) WithParent(parent core.Entity) *Holder {
	h.parent = parent
	return h
}

// Parent returns the owning entity, or self when no custom parent was set
func (h *Holder) Parent(self core.Entity) core.Entity {
	if h.parent != 0 {
		return h.parent
	}
	return self
}

// Tags returns the holder's tags; callers must not mutate the result
func (h *Holder) Tags() Set {
	return h.tags
}

// Has reports a single tag
func (h *Holder) Has(t Tag) bool {
	return h.tags.Contains(t)
}

// HasAny reports whether any tag in set is carried; nil set matches nothing
func (h *Holder) HasAny(set Set) bool {
	if h == nil || len(set) == 0 {
		return false
	}
	for _, t := range set {
		if h.tags.Contains(t) {
			return true
		}
	}
	return false
}

// FirstIndex returns the index of the first entry in priority the holder carries, or -1
func (h *Holder) FirstIndex(priority Set) int {
	if h == nil {
		return -1
	}
	for i, t := range priority {
		if h.tags.Contains(t) {
			return i
		}
	}
	return -1
}

// Replace swaps oldTag for newTag in place; no-op when oldTag is absent
func (h *Holder) Replace(oldTag, newTag Tag) {
	i := h.tags.IndexOf(oldTag)
	if i < 0 {
		return
	}
	h.tags[i] = newTag
}
