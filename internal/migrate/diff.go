package migrate

import "github.com/pcranston/gridshift/internal/domain"

// Diff returns the items present in src that have no structural counterpart
// in dest, by identity key and respecting multiplicity: for any key the
// result holds max(0, count(src) - count(dest)) items. Walking src in order
// keeps the surplus in source order until the coordinator's explicit sort.
func Diff(src, dest []*domain.Item) []*domain.Item {
	counts := make(map[string]int, len(dest))
	for _, it := range dest {
		counts[it.IdentityKey()]++
	}
	var surplus []*domain.Item
	for _, it := range src {
		key := it.IdentityKey()
		if counts[key] > 0 {
			counts[key]--
			continue
		}
		surplus = append(surplus, it)
	}
	return surplus
}
