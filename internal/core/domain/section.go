package domain

import (
	"fmt"
	"strings"
)

// SectionKind identifies one resume section with its own chat flow.
// The value doubles as the remote endpoint segment and the session key prefix.
type SectionKind string

// Available sections.
const (
	SectionProject      SectionKind = "project"
	SectionExperience   SectionKind = "experience"
	SectionEducation    SectionKind = "education"
	SectionAchievements SectionKind = "achievements"
	SectionSkills       SectionKind = "skills"

	// SectionPersonalInfo is the resume header. It has no chat flow.
	SectionPersonalInfo SectionKind = "personal_info"
)

// AllSections returns every section in resume display order.
func AllSections() []SectionKind {
	return []SectionKind{
		SectionExperience,
		SectionProject,
		SectionEducation,
		SectionSkills,
		SectionAchievements,
	}
}

// ParseSection converts user input to a SectionKind.
// It accepts the plural "projects" as an alias for "project".
func ParseSection(s string) (SectionKind, error) {
	k := SectionKind(strings.ToLower(strings.TrimSpace(s)))
	if k == "projects" {
		k = SectionProject
	}
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSection, s)
	}
	return k, nil
}

// IsValid returns true if the section is recognised.
func (k SectionKind) IsValid() bool {
	switch k {
	case SectionProject, SectionExperience, SectionEducation, SectionAchievements, SectionSkills:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SectionKind) String() string {
	return string(k)
}

// Title returns the singular heading used when adding an entry.
func (k SectionKind) Title() string {
	switch k {
	case SectionProject:
		return "Project"
	case SectionExperience:
		return "Experience"
	case SectionEducation:
		return "Education"
	case SectionAchievements:
		return "Achievement"
	case SectionSkills:
		return "Skills"
	case SectionPersonalInfo:
		return "Personal Info"
	default:
		return unknownDescription
	}
}

// Heading returns the resume heading for the section.
func (k SectionKind) Heading() string {
	switch k {
	case SectionProject:
		return "Projects"
	case SectionAchievements:
		return "Achievements"
	default:
		return k.Title()
	}
}

// EmptyText is shown when the section has no entries yet.
func (k SectionKind) EmptyText() string {
	return "No " + strings.ToLower(k.Heading()) + " added yet"
}
