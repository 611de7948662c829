package views

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
)

type NoteSortField string

const (
	NoteSortCreatedAt NoteSortField = "createdAt"
	NoteSortUpdatedAt NoteSortField = "updatedAt"
	NoteSortTitle     NoteSortField = "title"
	NoteSortPriority  NoteSortField = "priority"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// NoteFilter narrows and orders a note list. Zero values mean "no
// constraint"; an empty SortBy keeps stored order.
type NoteFilter struct {
	Category     models.NoteCategory
	Priority     models.NotePriority
	Tags         []string
	SearchQuery  string
	ShowArchived bool
	SortBy       NoteSortField
	SortOrder    SortOrder
}

// FilterNotes returns the notes matching f, pinned notes first.
func FilterNotes(notes []models.Note, f NoteFilter) []models.Note {
	query := strings.ToLower(f.SearchQuery)

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsArchived && !f.ShowArchived {
			continue
		}
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if f.Priority != "" && n.Priority != f.Priority {
			continue
		}
		if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, n.HasTag) {
			continue
		}
		if query != "" && !noteMatches(n, query) {
			continue
		}
		out = append(out, n)
	}

	if cmpFn := noteComparator(f.SortBy); cmpFn != nil {
		if f.SortOrder == SortDesc {
			asc := cmpFn
			cmpFn = func(a, b models.Note) int { return asc(b, a) }
		}
		slices.SortStableFunc(out, cmpFn)
	}

	slices.SortStableFunc(out, func(a, b models.Note) int {
		return pinRank(a) - pinRank(b)
	})
	return out
}

func pinRank(n models.Note) int {
	if n.IsPinned {
		return 0
	}
	return 1
}

func noteMatches(n models.Note, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) ||
		strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func noteComparator(field NoteSortField) func(a, b models.Note) int {
	switch field {
	case NoteSortCreatedAt:
		return func(a, b models.Note) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	case NoteSortUpdatedAt:
		return func(a, b models.Note) int { return cmp.Compare(a.UpdatedAt, b.UpdatedAt) }
	case NoteSortTitle:
		return func(a, b models.Note) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case NoteSortPriority:
		return func(a, b models.Note) int { return cmp.Compare(a.Priority.Weight(), b.Priority.Weight()) }
	default:
		return nil
	}
}

type NoteStats struct {
	Total      int
	Pinned     int
	Archived   int
	ByCategory map[models.NoteCategory]int
	ByPriority map[models.NotePriority]int
}

// NoteStatistics counts notes in one pass. Every known category and
// priority has a bucket, zero when unused.
func NoteStatistics(notes []models.Note) NoteStats {
	st := NoteStats{
		Total:      len(notes),
		ByCategory: make(map[models.NoteCategory]int, len(models.NoteCategories)),
		ByPriority: make(map[models.NotePriority]int, len(models.NotePriorities)),
	}
	for _, c := range models.NoteCategories {
		st.ByCategory[c] = 0
	}
	for _, p := range models.NotePriorities {
		st.ByPriority[p] = 0
	}

	for _, n := range notes {
		if n.IsPinned {
			st.Pinned++
		}
		if n.IsArchived {
			st.Archived++
		}
		st.ByCategory[n.Category]++
		st.ByPriority[n.Priority]++
	}
	return st
}

// CollectTags returns every distinct tag, sorted.
func CollectTags(notes []models.Note) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, n := range notes {
		for _, t := range n.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	slices.Sort(tags)
	return tags
}
