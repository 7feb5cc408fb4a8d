package entity

// seedCatalog is the fixed set of locally showcased projects
var seedCatalog = [...]ProjectEntry{
	{
		Title:       "E-commerce Mini",
		Description: "Catalog, cart, checkout with polished UX and solid state management.",
		Tags:        []string{"Next.js", "Stripe", "Tailwind"},
		Link:        "#",
		Role:        RoleStudent,
		Year:        2024,
		Origin:      OriginLocal,
	},
	{
		Title:       "Quiz Platform",
		Description: "Timed quizzes, leaderboard, and beautiful transitions.",
		Tags:        []string{"React", "Firebase", "Framer Motion"},
		Link:        "#",
		Role:        RoleOwner,
		Year:        2023,
		Origin:      OriginLocal,
	},
	{
		Title:       "Analytics Dashboard",
		Description: "Role-based admin with charts, filters, and exports.",
		Tags:        []string{"React", "Node", "Postgres"},
		Link:        "#",
		Role:        RoleContributor,
		Year:        2024,
		Origin:      OriginLocal,
	},
	{
		Title:       "Portfolio v2",
		Description: "This very template, accessible, fast, and creative.",
		Tags:        []string{"React", "Tailwind", "Recharts"},
		Link:        "#",
		Role:        RoleOwner,
		Year:        2025,
		Origin:      OriginLocal,
	},
}

// LocalCatalog returns a fresh copy of the seed catalog in seed order
func LocalCatalog() []ProjectEntry {
	out := make([]ProjectEntry, len(seedCatalog))
	for i, p := range seedCatalog {
		out[i] = p.Clone()
	}
	return out
}
