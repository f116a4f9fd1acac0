package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// PresentLabel stands in for a missing end date.
const PresentLabel = "Present"

// projectFields are shown in the item heading; other project keys are
// listed as extras.
var projectFields = map[string]bool{
	"title": true, "role": true, "timeline": true, "description": true,
}

// Outline is a format-neutral view of a resume. Every renderer (Markdown,
// HTML preview, terminal) walks the same outline so they agree on what is
// shown and in which order.
type Outline struct {
	Name     string
	Contact  []string
	Links    []string
	Sections []SectionOutline
}

// SectionOutline is one resume section.
type SectionOutline struct {
	Kind      domain.SectionKind
	Heading   string
	EmptyText string
	// Compact sections render one line per item.
	Compact bool
	Items   []Item
}

// Item is one entry of a section.
type Item struct {
	Title       string
	Meta        []string
	Summary     string
	Description domain.Description
	Extra       []string
}

// MetaLine joins the non-empty meta fields.
func (i Item) MetaLine() string {
	return JoinNonEmpty(" · ", i.Meta...)
}

// BuildOutline lays out doc in display order.
func BuildOutline(doc *domain.ResumeDocument) Outline {
	info := doc.PersonalInfo
	o := Outline{
		Name:    info.Name,
		Contact: nonEmpty(info.Email, info.Phone, info.Location),
		Links:   nonEmpty(info.LinkedIn, info.GitHub, info.Website),
	}

	for _, kind := range domain.AllSections() {
		s := SectionOutline{
			Kind:      kind,
			Heading:   kind.Heading(),
			EmptyText: kind.EmptyText(),
			Compact:   kind == domain.SectionSkills || kind == domain.SectionAchievements,
		}
		s.Items = items(kind, doc)
		o.Sections = append(o.Sections, s)
	}
	return o
}

func items(kind domain.SectionKind, doc *domain.ResumeDocument) []Item {
	var out []Item
	switch kind {
	case domain.SectionExperience:
		for _, e := range doc.Experience {
			out = append(out, Item{
				Title:       JoinNonEmpty(", ", e.Title, e.Company),
				Meta:        []string{e.Type, e.Location, e.Timeline.Range(PresentLabel)},
				Description: e.Description,
			})
		}
	case domain.SectionProject:
		for _, p := range doc.Projects {
			out = append(out, projectItem(p))
		}
	case domain.SectionEducation:
		for _, e := range doc.Education {
			gpa := ""
			if e.GPA != "" {
				gpa = "GPA " + e.GPA
			}
			out = append(out, Item{
				Title:       JoinNonEmpty(", ", JoinNonEmpty(" in ", e.Degree, e.Field), e.Institution),
				Meta:        []string{e.Location, e.Timeline.Range(PresentLabel), gpa},
				Description: e.Description,
			})
		}
	case domain.SectionSkills:
		for _, s := range doc.Skills {
			out = append(out, Item{Title: s.Category, Summary: strings.Join(s.Items, ", ")})
		}
	case domain.SectionAchievements:
		for _, a := range doc.Achievements {
			out = append(out, Item{
				Title:   a.Title,
				Meta:    []string{a.Organization, a.Date.String()},
				Summary: a.Description,
			})
		}
	}
	return out
}

func projectItem(p domain.Project) Item {
	title := p.Title()
	if title == "" {
		title = "Untitled project"
	}
	item := Item{
		Title:       title,
		Meta:        []string{p.Role(), p.Timeline().Range(PresentLabel)},
		Description: p.Description(),
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		if !projectFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		item.Extra = append(item.Extra, fmt.Sprintf("%s: %v", strings.ReplaceAll(k, "_", " "), p[k]))
	}
	return item
}

// JoinNonEmpty joins the trimmed, non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	return strings.Join(nonEmpty(parts...), sep)
}

func nonEmpty(parts ...string) []string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return kept
}
