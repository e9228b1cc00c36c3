package menunav

import (
	"sort"
	"strings"
)

// Search filters items by a case-insensitive substring over title and slug.
// Children are flattened into the result so nested pages stay findable.
// Title-prefix matches sort first.
func Search(items []Item, query string, limit int, opts Options) []Item {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := make([]matchedItem, 0, 16)
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, item := range items {
			title := strings.ToLower(item.Title)
			slug := strings.ToLower(item.Slug)
			if strings.Contains(title, query) || strings.Contains(slug, query) {
				flat := item
				flat.Children = nil
				matches = append(matches, matchedItem{
					item:     flat,
					isPrefix: strings.HasPrefix(title, query) || strings.HasPrefix(slug, query),
				})
			}
			walk(item.Children)
		}
	}
	walk(items)

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].item.Title < matches[j].item.Title
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Item, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.item)
	}
	return out
}

type matchedItem struct {
	item     Item
	isPrefix bool
}

func clampLimit(limit int, opts Options) int {
	if limit <= 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		limit = opts.MaxLimit
	}
	return limit
}
