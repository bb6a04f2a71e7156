package ecs

// Stores is the set of tables an entity can have rows in. Dropping an id
// from Stores removes it from every member, in the order members joined.
type Stores struct {
	members []Removable
}

func NewStores() *Stores {
	return &Stores{members: make([]Removable, 0, 8)}
}

// Join adds a table. Joining the same table twice is a no-op.
func (s *Stores) Join(t Removable) {
	for _, m := range s.members {
		if m == t {
			return
		}
	}
	s.members = append(s.members, t)
}

// Drop removes id from every member table.
func (s *Stores) Drop(id EntityID) {
	for _, m := range s.members {
		m.Remove(id)
	}
}

// Len returns the number of member tables.
func (s *Stores) Len() int { return len(s.members) }
