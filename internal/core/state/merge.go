package state

// MergeCreated puts created at the head of items. If an element with the same
// id is already present it is replaced in place instead, so a replayed create
// never duplicates. items is never modified.
func MergeCreated[T Entity](items []T, created T) []T {
	id := created.GetID()
	for i, item := range items {
		if item.GetID() == id {
			out := make([]T, len(items))
			copy(out, items)
			out[i] = created
			return out
		}
	}

	out := make([]T, 0, len(items)+1)
	out = append(out, created)
	return append(out, items...)
}

// MergeUpdated swaps the element carrying updated's id for updated. Unknown
// ids leave the collection as it was.
func MergeUpdated[T Entity](items []T, updated T) []T {
	id := updated.GetID()
	out := make([]T, len(items))
	for i, item := range items {
		if item.GetID() == id {
			out[i] = updated
		} else {
			out[i] = item
		}
	}
	return out
}

// MergeDeleted drops every element with the given id.
func MergeDeleted[T Entity](items []T, id string) []T {
	return RemoveWhere(items, func(item T) bool { return item.GetID() == id })
}

// RemoveWhere returns a copy of items without the elements matching drop.
func RemoveWhere[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !drop(item) {
			out = append(out, item)
		}
	}
	return out
}

// Append returns items with added at the end.
func Append[T any](items []T, added T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, added)
}
