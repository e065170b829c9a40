package render

import "strconv"

// Item is one entry of a rendered read-only list. Key is derived from the
// position in the input sequence, which is the item's identity: lists are
// never reordered, inserted into or removed from at runtime.
type Item[V any] struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	View  V      `json:"view"`
}

// List applies rule to every element of items, preserving order. It has no
// side effects and no error path; an empty input yields an empty result.
func List[T, V any](prefix string, items []T, rule func(T) V) []Item[V] {
	out := make([]Item[V], 0, len(items))
	for idx, item := range items {
		out = append(out, Item[V]{
			Index: idx,
			Key:   prefix + "-" + strconv.Itoa(idx),
			View:  rule(item),
		})
	}
	return out
}
