// Package history keeps a shopper's recently viewed products: a bounded,
// de-duplicated list ordered most recent first, persisted through a Storage
// adapter, plus the queries that turn it into "recently viewed" and
// "related products" rails.
package history

// MaxEntries caps the number of remembered product views.
const MaxEntries = 10

// Entry is one recorded product view.
type Entry struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

// Push returns entries with e moved (or inserted) at the front, without
// duplicates and capped at MaxEntries. The input slice is not modified.
func Push(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, min(len(entries)+1, MaxEntries))
	out = append(out, e)
	for _, existing := range entries {
		if existing.ID == e.ID {
			continue
		}
		if len(out) == MaxEntries {
			break
		}
		out = append(out, existing)
	}
	return out
}

// IDs returns the entry ids in order.
func IDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// Categories returns the entry categories in order, with duplicates.
func Categories(entries []Entry) []string {
	cats := make([]string, len(entries))
	for i, e := range entries {
		cats[i] = e.Category
	}
	return cats
}
