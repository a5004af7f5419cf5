package catalog

import (
	"strings"
	"testing"

	catalogRepo "servicehub/database/repository/catalog"
	"servicehub/models"

	"github.com/stretchr/testify/assert"
)

func titles(providers []models.ServiceProvider) []string {
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		out = append(out, p.Title)
	}
	return out
}

func TestFilterEmptyInputsReturnEverything(t *testing.T) {
	providers := catalogRepo.SeedProviders()
	got := Filter(providers, nil, "")
	assert.Equal(t, titles(providers), titles(got))
}

func TestFilterByQuery(t *testing.T) {
	providers := catalogRepo.SeedProviders()

	cases := []struct {
		query string
		want  []string
	}{
		{"plumb", []string{"Licensed Plumber"}},
		{"PLUMB", []string{"Licensed Plumber"}},
		{"eco-friendly", []string{"Expert House Cleaner"}}, // description
		{"guard", []string{"Professional Security Guard"}}, // title and category name
		{"house cleaning", []string{"Expert House Cleaner"}},
		{"professional", []string{"Professional Security Guard", "Expert House Cleaner"}},
		{"welding", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, titles(Filter(providers, nil, tc.query)))
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	providers := catalogRepo.SeedProviders()
	categories := catalogRepo.SeedCategories()

	security := categories[4]
	assert.Equal(t, []string{"Professional Security Guard"}, titles(Filter(providers, &security, "")))

	electrical := categories[2]
	assert.Empty(t, Filter(providers, &electrical, ""))
}

// Every provider is kept iff the query is empty or a case-insensitive substring
// of its title, description or category name.
func TestFilterQueryProperty(t *testing.T) {
	providers := catalogRepo.SeedProviders()
	queries := []string{"", "a", "PRO", "repairs", "security", "zzz", " ", "Licensed", "residential"}

	for _, q := range queries {
		got := map[string]bool{}
		for _, p := range Filter(providers, nil, q) {
			got[p.ID] = true
		}
		for _, p := range providers {
			lq := strings.ToLower(q)
			want := q == "" ||
				strings.Contains(strings.ToLower(p.Title), lq) ||
				strings.Contains(strings.ToLower(p.Description), lq) ||
				strings.Contains(strings.ToLower(p.Category.Name), lq)
			assert.Equal(t, want, got[p.ID], "query %q provider %s", q, p.ID)
		}
	}
}

func TestFilterCategoryProperty(t *testing.T) {
	providers := catalogRepo.SeedProviders()
	for _, c := range catalogRepo.SeedCategories() {
		c := c
		got := map[string]bool{}
		for _, p := range Filter(providers, &c, "") {
			got[p.ID] = true
		}
		for _, p := range providers {
			assert.Equal(t, p.Category.ID == c.ID, got[p.ID], "category %s provider %s", c.ID, p.ID)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	providers := catalogRepo.SeedProviders()
	_ = Filter(providers, nil, "plumb")
	assert.Len(t, providers, 3)
	assert.Equal(t, "1", providers[0].ID)
}
