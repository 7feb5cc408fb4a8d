package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role represents the author's role on a showcased project
type Role string

const (
	RoleOwner       Role = "Owner"
	RoleContributor Role = "Contributor"
	RoleStudent     Role = "Student"
	RoleFreelance   Role = "Freelance"
)

// Origin records where a project entry came from
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "github"
)

// Difficulty is a label derived from a project's star count
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// SortMode selects the ordering of the filtered gallery
type SortMode string

const (
	SortMostStarred SortMode = "Most starred"
	SortNewest      SortMode = "Newest"
	SortOldest      SortMode = "Oldest"
	SortAlphabetic  SortMode = "A-Z"
)

// AllOption is the selector value that disables a filter
const AllOption = "All"

var (
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownSortMode   = errors.New("unknown sort mode")
	ErrInvalidYear       = errors.New("invalid year")
)

// Roles lists every role in display order
var Roles = []Role{RoleOwner, RoleContributor, RoleStudent, RoleFreelance}

// Difficulties lists every difficulty in display order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// SortModes lists every sort mode, default first
var SortModes = []SortMode{SortMostStarred, SortNewest, SortOldest, SortAlphabetic}

// ProjectEntry represents a single showcased project
type ProjectEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	Role        Role     `json:"role"`
	Year        int      `json:"year"`
	StarCount   int      `json:"stars"`
	Origin      Origin   `json:"source"`
}

// ClassifiedEntry is a project entry with its derived difficulty attached
type ClassifiedEntry struct {
	ProjectEntry
	Difficulty Difficulty `json:"difficulty"`
}

// NewRemoteEntry builds a project entry from repository metadata.
// The year is the UTC calendar year of createdAt.
func NewRemoteEntry(name, description, url string, stars int, createdAt time.Time, tags []string) ProjectEntry {
	return ProjectEntry{
		Title:       name,
		Description: description,
		Tags:        nonEmpty(tags),
		Link:        url,
		Role:        RoleOwner,
		Year:        createdAt.UTC().Year(),
		StarCount:   ClampStars(stars),
		Origin:      OriginRemote,
	}
}

// ClampStars returns stars, or 0 when stars is negative
func ClampStars(stars int) int {
	if stars < 0 {
		return 0
	}
	return stars
}

// IsLocal returns true if the entry comes from the seed catalog
func (p *ProjectEntry) IsLocal() bool {
	return p.Origin == OriginLocal
}

// SearchText returns the text the query filter matches against
func (p *ProjectEntry) SearchText() string {
	return p.Title + " " + p.Description + " " + strings.Join(p.Tags, " ")
}

// Clone returns a copy that shares no slices with p
func (p ProjectEntry) Clone() ProjectEntry {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

// Selection holds the active filter and sort selectors.
// Zero values mean "All" for the filters and "Most starred" for the sort.
type Selection struct {
	Role       Role
	Year       int
	Difficulty Difficulty
	Query      string
	Sort       SortMode
}

// SortOrDefault returns the selected sort mode, defaulting to most starred
func (s Selection) SortOrDefault() SortMode {
	if s.Sort == "" {
		return SortMostStarred
	}
	return s.Sort
}

// ParseRole parses a role selector; "All" and "" yield the zero role
func ParseRole(value string) (Role, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AllOption) {
		return "", nil
	}
	for _, role := range Roles {
		if strings.EqualFold(value, string(role)) {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, value)
}

// ParseDifficulty parses a difficulty selector; "All" and "" yield the zero difficulty
func ParseDifficulty(value string) (Difficulty, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AllOption) {
		return "", nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(value, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
}

// ParseSortMode parses a sort selector; "" yields the default mode
func ParseSortMode(value string) (SortMode, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return SortMostStarred, nil
	}
	for _, mode := range SortModes {
		if strings.EqualFold(value, string(mode)) {
			return mode, nil
		}
	}
	switch strings.ToLower(value) {
	case "stars", "most-starred":
		return SortMostStarred, nil
	case "az", "alpha":
		return SortAlphabetic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortMode, value)
}

// ParseYear parses a year selector; "All" and "" yield 0
func ParseYear(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AllOption) {
		return 0, nil
	}
	year, err := strconv.Atoi(value)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, value)
	}
	return year, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ParseSelection builds a selection from raw selector strings
func ParseSelection(role, year, difficulty, query, sort string) (Selection, error) {
	var sel Selection
	var err error

	if sel.Role, err = ParseRole(role); err != nil {
		return sel, err
	}
	if sel.Year, err = ParseYear(year); err != nil {
		return sel, err
	}
	if sel.Difficulty, err = ParseDifficulty(difficulty); err != nil {
		return sel, err
	}
	if sel.Sort, err = ParseSortMode(sort); err != nil {
		return sel, err
	}
	sel.Query = query

	return sel, nil
}
