package selection

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"feedgate/internal/domain/entity"
)

// CacheKey derives the stable selection-cache key for a definition.
//
// The key covers exactly the filter-relevant fields (content types,
// category/tag/taxonomy filters, date range, limit and ordering) and
// deliberately excludes cosmetic fields (title, description, enabled) so
// cosmetic edits do not invalidate cached selections. Set-valued fields are
// sorted before hashing so the key does not depend on configuration order.
// The field list below is the contract; extend it only when a new field
// changes which items a definition selects.
func CacheKey(def entity.FeedDefinition) string {
	var b strings.Builder

	writeStrings := func(label string, values []string) {
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "%s=%s;", label, strings.Join(sorted, ","))
	}
	writeInt64s := func(label string, values []int64) {
		sorted := append([]int64(nil), values...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		fmt.Fprintf(&b, "%s=", label)
		for i, v := range sorted {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", v)
		}
		b.WriteByte(';')
	}

	writeStrings("types", def.ContentTypes)
	writeInt64s("categories", def.CategoryFilter)
	writeInt64s("tags", def.TagFilter)

	taxonomies := make([]string, 0, len(def.TaxonomyFilter))
	for name := range def.TaxonomyFilter {
		taxonomies = append(taxonomies, name)
	}
	sort.Strings(taxonomies)
	for _, name := range taxonomies {
		writeStrings("taxonomy:"+name, def.TaxonomyFilter[name])
	}

	if def.DateFrom != nil {
		fmt.Fprintf(&b, "from=%d;", def.DateFrom.UTC().Unix())
	}
	if def.DateTo != nil {
		fmt.Fprintf(&b, "to=%d;", def.DateTo.UTC().Unix())
	}
	fmt.Fprintf(&b, "limit=%d;order=%s:%s", def.Limit, def.OrderBy, def.OrderDirection)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
