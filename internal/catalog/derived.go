package catalog

import (
	"strings"

	"github.com/starford/dossier/internal/models"
)

// FilterAll is the filter value that matches everything.
const FilterAll = "all"

// FilterProjects returns the projects matching both category and status.
// An empty or "all" value disables that filter.
func (c *Catalog) FilterProjects(category, status string) []models.Project {
	out := make([]models.Project, 0, len(c.data.Projects))
	for _, p := range c.data.Projects {
		if !matches(category, string(p.Category)) || !matches(status, string(p.Status)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// ProjectCategories returns the distinct project categories in first-seen order.
func (c *Catalog) ProjectCategories() []models.ProjectCategory {
	return distinct(c.data.Projects, func(p models.Project) models.ProjectCategory { return p.Category })
}

// ProjectStatuses returns the distinct project statuses in first-seen order.
func (c *Catalog) ProjectStatuses() []models.ProjectStatus {
	return distinct(c.data.Projects, func(p models.Project) models.ProjectStatus { return p.Status })
}

// ProjectStatusCounts counts projects per status.
func (c *Catalog) ProjectStatusCounts() map[models.ProjectStatus]int {
	out := make(map[models.ProjectStatus]int)
	for _, p := range c.data.Projects {
		out[p.Status]++
	}
	return out
}

func distinct[T any, K comparable](items []T, key func(T) K) []K {
	seen := make(map[K]struct{})
	var out []K
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// WriteupsByPlatform returns the write-ups of platform (case-insensitive)
// in declaration order.
func (c *Catalog) WriteupsByPlatform(platform string) []models.Writeup {
	var out []models.Writeup
	for _, w := range c.data.Writeups {
		if strings.EqualFold(string(w.Platform), platform) {
			out = append(out, w)
		}
	}
	return out
}

// DifficultyGroup is one tier of a platform page.
type DifficultyGroup struct {
	Difficulty models.Difficulty `json:"difficulty"`
	Writeups   []models.Writeup  `json:"writeups"`
}

// Empty reports whether the tier has no write-ups.
func (g DifficultyGroup) Empty() bool { return len(g.Writeups) == 0 }

// GroupByDifficulty splits a platform's write-ups into the four fixed tiers,
// easy to insane. Every tier is present even when it is empty.
func (c *Catalog) GroupByDifficulty(platform string) []DifficultyGroup {
	tiers := models.Difficulties()
	groups := make([]DifficultyGroup, len(tiers))
	pos := make(map[models.Difficulty]int, len(tiers))
	for i, d := range tiers {
		groups[i] = DifficultyGroup{Difficulty: d, Writeups: []models.Writeup{}}
		pos[d] = i
	}
	for _, w := range c.WriteupsByPlatform(platform) {
		if i, ok := pos[w.Difficulty]; ok {
			groups[i].Writeups = append(groups[i].Writeups, w)
		}
	}
	return groups
}

// CTFByCategory returns the CTF write-ups of one category.
func (c *Catalog) CTFByCategory(category string) []models.CTFWriteup {
	var out []models.CTFWriteup
	for _, w := range c.data.CTF {
		if string(w.Category) == category {
			out = append(out, w)
		}
	}
	return out
}

// CTFByDifficulty returns the CTF write-ups of one difficulty.
func (c *Catalog) CTFByDifficulty(difficulty string) []models.CTFWriteup {
	var out []models.CTFWriteup
	for _, w := range c.data.CTF {
		if string(w.Difficulty) == difficulty {
			out = append(out, w)
		}
	}
	return out
}

// BlogByCategory returns the blog posts of one category.
func (c *Catalog) BlogByCategory(category string) []models.BlogPost {
	var out []models.BlogPost
	for _, b := range c.data.Blog {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// Roadmap is the certification list split by status.
type Roadmap struct {
	Taken      []models.Certification `json:"taken"`
	InProgress []models.Certification `json:"inProgress"`
	Todo       []models.Certification `json:"todo"`
}

// CertificationsByStatus builds the roadmap columns.
func (c *Catalog) CertificationsByStatus() Roadmap {
	r := Roadmap{
		Taken:      []models.Certification{},
		InProgress: []models.Certification{},
		Todo:       []models.Certification{},
	}
	for _, cert := range c.data.Certifications {
		switch cert.Status {
		case models.CertTaken:
			r.Taken = append(r.Taken, cert)
		case models.CertInProgress:
			r.InProgress = append(r.InProgress, cert)
		case models.CertTodo:
			r.Todo = append(r.Todo, cert)
		}
	}
	return r
}

// SkillGroup is a titled block on the skills page.
type SkillGroup struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Skills      []models.Skill `json:"skills"`
}

var skillLayout = []struct {
	name, description string
	ids               []string
}{
	{"Coding", "Languages I studied or used for projects development", []string{"python", "js", "go", "ccpp", "java"}},
	{"Infra & Automation", "IaC scripting and deployments workflows.", []string{"bash", "terraform", "docker"}},
	{"Offensive Security", "Specialized areas of security", []string{"web", "network", "ai", "binary"}},
	{"Operating Environment", "Low level understanding and management of the OS", []string{"linux", "windows"}},
}

// SkillGroups arranges the skills into the fixed page layout. Skills keep
// their declaration order inside a group; ids missing from the catalog are
// skipped and skills not named by any group are left out.
func (c *Catalog) SkillGroups() []SkillGroup {
	out := make([]SkillGroup, 0, len(skillLayout))
	for _, l := range skillLayout {
		want := make(map[string]struct{}, len(l.ids))
		for _, id := range l.ids {
			want[id] = struct{}{}
		}
		g := SkillGroup{Name: l.name, Description: l.description, Skills: []models.Skill{}}
		for _, s := range c.data.Skills {
			if _, ok := want[s.ID]; ok {
				g.Skills = append(g.Skills, s)
			}
		}
		out = append(out, g)
	}
	return out
}
