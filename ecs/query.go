package ecs

// intersect returns slot ids present in every set.
func intersect(sets []*SparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	// iterate smallest set
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]entityID, 0, smallest.Len())
next:
	for _, id := range smallest.denseEntities {
		for _, s := range sets {
			if !s.Has(id) {
				continue next
			}
		}
		out = append(out, id)
	}
	return out
}
