package compare

type idSet map[int]struct{}

func keys[T any](entries []T, key func(T) int) idSet {
	s := make(idSet, len(entries))
	for _, e := range entries {
		s[key(e)] = struct{}{}
	}
	return s
}

func (s idSet) has(id int) bool {
	_, ok := s[id]
	return ok
}

// difference returns ids in s but not in other.
func (s idSet) difference(other idSet) idSet {
	out := make(idSet)
	for id := range s {
		if !other.has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

func (s idSet) intersection(other idSet) idSet {
	out := make(idSet)
	for id := range s {
		if other.has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}
