package domain

// Mutation is an optimistic local edit that covers a subset of an entity's fields.
type Mutation[V any] interface {
	Apply(V) V
	// Reflected reports whether v already carries every field of the edit.
	Reflected(v V) bool
	// Without drops the fields next also writes. ok is false when no field is left.
	Without(next Mutation[V]) (rest Mutation[V], ok bool)
}

var (
	_ Mutation[Item]         = ItemPatch{}
	_ Mutation[SessionEntry] = EntryPatch{}
)

func (p ItemPatch) Without(next Mutation[Item]) (Mutation[Item], bool) {
	n, ok := next.(ItemPatch)
	if !ok {
		return p, true
	}
	if n.Status != nil {
		p.Status = nil
	}
	if n.Location != nil {
		p.Location = nil
	}
	if n.Condition != nil {
		p.Condition = nil
	}
	return p, p.Status != nil || p.Location != nil || p.Condition != nil
}

func (p EntryPatch) Without(next Mutation[SessionEntry]) (Mutation[SessionEntry], bool) {
	n, ok := next.(EntryPatch)
	if !ok {
		return p, true
	}
	if n.Checked != nil {
		p.Checked = nil
	}
	if n.CheckedAt != nil {
		p.CheckedAt = nil
	}
	if n.NewLocation != nil {
		p.NewLocation = nil
	}
	if n.NewCondition != nil {
		p.NewCondition = nil
	}
	if n.Notes != nil {
		p.Notes = nil
	}
	return p, !p.Empty() || p.CheckedAt != nil
}
