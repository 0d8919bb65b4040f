package model

// DiffTagIDs compares the current association set with the desired one and
// returns the ids to insert and the ids to delete. Ids present in both are
// left out of both results. Duplicates in either input are ignored and the
// output preserves first-seen order.
func DiffTagIDs(current, desired []int64) (toAdd, toRemove []int64) {
	cur := make(map[int64]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	want := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		if _, seen := want[id]; seen {
			continue
		}
		want[id] = struct{}{}
		if _, ok := cur[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	seen := make(map[int64]struct{}, len(current))
	for _, id := range current {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

// UniqueTagIDs drops repeated ids keeping the first occurrence.
func UniqueTagIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
