// Package genres holds the static mapping from genre concepts to TMDB genre
// ids and the keyword fallback used when no language model is available.
package genres

import "strings"

// Category maps one genre concept to its TMDB genre ids. Description is the
// human-readable hint handed to the language model; Keywords drive the
// deterministic fallback. The table is read-only after process start.
type Category struct {
	Name        string
	Description string
	GenreIDs    []int
	Keywords    []string
}

var catalog = []Category{
	{
		Name:        "Komödie",
		Description: "Lustige Filme, romantische Komödien, Humor",
		GenreIDs:    []int{35, 10749},
		Keywords:    []string{"lustig", "lachen", "komödie", "romantisch"},
	},
	{
		Name:        "Horror/Thriller",
		Description: "Gruselige, spannende, angsteinflößende Filme",
		GenreIDs:    []int{27, 53},
		Keywords:    []string{"gruselig", "angst", "horror", "thriller", "spannend"},
	},
	{
		Name:        "Kinderfilme",
		Description: "Familienfilme, Animationsfilme für Kinder",
		GenreIDs:    []int{10751, 16},
		Keywords:    []string{"kinder", "familie", "animation"},
	},
	{
		Name:        "Action/Abenteuer",
		Description: "Action, Kampf, Abenteuer, Reisen",
		GenreIDs:    []int{28, 12},
		Keywords:    []string{"kampf", "explosion", "action", "abenteuer", "reise"},
	},
	{
		Name:        "Sci-Fi/Fantasy",
		Description: "Science Fiction, Weltraum, Fantasy, Zauber",
		GenreIDs:    []int{878, 14},
		Keywords:    []string{"weltraum", "zauber", "fantasie", "science fiction", "alien"},
	},
}

// Catalog returns all genre categories in their fixed order.
func Catalog() []Category {
	return catalog
}

// Lookup returns the category with the given concept name.
func Lookup(name string) (Category, bool) {
	for _, c := range catalog {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// KnownID reports whether id belongs to any category. Used to reject
// hallucinated ids from model responses.
func KnownID(id int) bool {
	for _, c := range catalog {
		for _, gid := range c.GenreIDs {
			if gid == id {
				return true
			}
		}
	}
	return false
}

// MatchKeywords scans prompt case-insensitively for every category keyword
// and returns the union of the matched categories' genre ids, duplicates
// collapsed, in catalog order. A prompt without any match yields an empty
// result; that is a valid outcome, not an error.
func MatchKeywords(prompt string) []int {
	lower := strings.ToLower(prompt)

	ids := []int{}
	seen := make(map[int]bool)
	for _, c := range catalog {
		for _, kw := range c.Keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			for _, id := range c.GenreIDs {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			break
		}
	}
	return ids
}
