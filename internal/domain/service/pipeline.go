package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"portfolio-gallery/internal/domain/entity"
)

const (
	hardStarThreshold   = 200
	mediumStarThreshold = 50
)

// Classify derives a difficulty label from a star count
func Classify(stars int) entity.Difficulty {
	switch {
	case stars >= hardStarThreshold:
		return entity.DifficultyHard
	case stars >= mediumStarThreshold:
		return entity.DifficultyMedium
	default:
		return entity.DifficultyEasy
	}
}

// Merge concatenates the local catalog with the remote entries when includeRemote is set.
// Entries are copied; titles are never de-duplicated.
func Merge(local, remote []entity.ProjectEntry, includeRemote bool) []entity.ProjectEntry {
	size := len(local)
	if includeRemote {
		size += len(remote)
	}

	merged := make([]entity.ProjectEntry, 0, size)
	for _, p := range local {
		merged = append(merged, p.Clone())
	}
	if includeRemote {
		for _, p := range remote {
			merged = append(merged, p.Clone())
		}
	}
	return merged
}

// Attach pairs every merged entry with its derived difficulty
func Attach(merged []entity.ProjectEntry) []entity.ClassifiedEntry {
	out := make([]entity.ClassifiedEntry, len(merged))
	for i, p := range merged {
		p.StarCount = entity.ClampStars(p.StarCount)
		out[i] = entity.ClassifiedEntry{
			ProjectEntry: p,
			Difficulty:   Classify(p.StarCount),
		}
	}
	return out
}

// Filter keeps the entries that satisfy every active selector
func Filter(entries []entity.ClassifiedEntry, sel entity.Selection) []entity.ClassifiedEntry {
	query := strings.ToLower(sel.Query)

	out := make([]entity.ClassifiedEntry, 0, len(entries))
	for _, e := range entries {
		if sel.Role != "" && e.Role != sel.Role {
			continue
		}
		if sel.Year != 0 && e.Year != sel.Year {
			continue
		}
		if sel.Difficulty != "" && e.Difficulty != sel.Difficulty {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.SearchText()), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sort orders entries in place with a stable sort
func Sort(entries []entity.ClassifiedEntry, mode entity.SortMode) {
	var less func(i, j int) bool

	switch mode {
	case entity.SortNewest:
		less = func(i, j int) bool { return entries[i].Year > entries[j].Year }
	case entity.SortOldest:
		less = func(i, j int) bool { return entries[i].Year < entries[j].Year }
	case entity.SortAlphabetic:
		col := collate.New(language.English)
		less = func(i, j int) bool {
			return col.CompareString(entries[i].Title, entries[j].Title) < 0
		}
	default:
		less = func(i, j int) bool { return entries[i].StarCount > entries[j].StarCount }
	}

	sort.SliceStable(entries, less)
}

// YearOptions returns the distinct years of the merged set, newest first
func YearOptions(merged []entity.ProjectEntry) []int {
	seen := make(map[int]bool, len(merged))
	years := make([]int, 0, len(merged))
	for _, p := range merged {
		if seen[p.Year] {
			continue
		}
		seen[p.Year] = true
		years = append(years, p.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Run executes the full pipeline over the local and remote catalogs
func Run(local, remote []entity.ProjectEntry, includeRemote bool, sel entity.Selection) entity.GalleryView {
	merged := Merge(local, remote, includeRemote)
	filtered := Filter(Attach(merged), sel)
	Sort(filtered, sel.SortOrDefault())

	return entity.GalleryView{
		Entries: filtered,
		Years:   YearOptions(merged),
	}
}
