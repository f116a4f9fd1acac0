package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionEntry is one normalized record produced by a completed chat.
type SectionEntry interface {
	// Section returns the list the entry belongs to.
	Section() SectionKind
}

// PersonalInfo is the singular header of the resume.
type PersonalInfo struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
	Website  string `json:"website" yaml:"website"`
}

// Section implements SectionEntry. Applying personal info replaces the header.
func (PersonalInfo) Section() SectionKind { return SectionPersonalInfo }

// Project is passed through from the service unchanged.
type Project map[string]any

// Section implements SectionEntry.
func (Project) Section() SectionKind { return SectionProject }

// UnmarshalJSON keeps numbers as json.Number so large integers survive a
// save and reload.
func (p *Project) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	*p = fields
	return nil
}

// Title returns the project title, if the service provided one.
func (p Project) Title() string { return p.text("title") }

// Role returns the user's role on the project.
func (p Project) Role() string { return p.text("role") }

// Timeline returns the project's date range.
func (p Project) Timeline() Timeline {
	var t Timeline
	p.decode("timeline", &t)
	return t
}

// Description returns the project description.
func (p Project) Description() Description {
	var d Description
	p.decode("description", &d)
	return d
}

func (p Project) text(key string) string {
	var s FlexString
	p.decode(key, &s)
	return s.String()
}

// decode re-reads one field through its JSON form. Unreadable fields are
// left at their zero value; projects are rendered best-effort.
func (p Project) decode(key string, dst any) {
	v, ok := p[key]
	if !ok || v == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, dst) //nolint:errcheck // best-effort rendering
}

// SkillGroup is a named list of skills.
type SkillGroup struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

// Section implements SectionEntry.
func (SkillGroup) Section() SectionKind { return SectionSkills }

// Achievement is an award, certification, or similar.
type Achievement struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Date         Timeline `json:"date" yaml:"date"`
	Type         string   `json:"type" yaml:"type"`
	Organization string   `json:"organization" yaml:"organization"`
}

// Section implements SectionEntry.
func (Achievement) Section() SectionKind { return SectionAchievements }

// Experience is one position held.
type Experience struct {
	Title       string      `json:"title" yaml:"title"`
	Company     string      `json:"company" yaml:"company"`
	Type        string      `json:"type" yaml:"type"`
	Timeline    Timeline    `json:"timeline" yaml:"timeline"`
	Location    string      `json:"location" yaml:"location"`
	Description Description `json:"description" yaml:"description"`
}

// Section implements SectionEntry.
func (Experience) Section() SectionKind { return SectionExperience }

// Education is one degree or course.
type Education struct {
	Degree      string      `json:"degree" yaml:"degree"`
	Institution string      `json:"institution" yaml:"institution"`
	Field       string      `json:"field" yaml:"field"`
	Timeline    Timeline    `json:"timeline" yaml:"timeline"`
	GPA         string      `json:"gpa" yaml:"gpa"`
	Location    string      `json:"location" yaml:"location"`
	Description Description `json:"description" yaml:"description"`
}

// Section implements SectionEntry.
func (Education) Section() SectionKind { return SectionEducation }

// ResumeDocument is the assembled resume.
// Lists only grow: entries are appended, never reordered or removed.
type ResumeDocument struct {
	PersonalInfo PersonalInfo  `json:"personal_info" yaml:"personal_info"`
	Projects     []Project     `json:"projects" yaml:"projects"`
	Experience   []Experience  `json:"experience" yaml:"experience"`
	Education    []Education   `json:"education" yaml:"education"`
	Achievements []Achievement `json:"achievements" yaml:"achievements"`
	Skills       []SkillGroup  `json:"skills" yaml:"skills"`
}

// NewResumeDocument returns an empty document with non-nil lists.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Projects:     []Project{},
		Experience:   []Experience{},
		Education:    []Education{},
		Achievements: []Achievement{},
		Skills:       []SkillGroup{},
	}
}

// Append adds entry to the end of its section list.
// PersonalInfo is singular and replaces the current header instead.
func (d *ResumeDocument) Append(entry SectionEntry) error {
	switch e := entry.(type) {
	case PersonalInfo:
		d.PersonalInfo = e
	case Project:
		d.Projects = append(d.Projects, e)
	case SkillGroup:
		d.Skills = append(d.Skills, e)
	case Achievement:
		d.Achievements = append(d.Achievements, e)
	case Experience:
		d.Experience = append(d.Experience, e)
	case Education:
		d.Education = append(d.Education, e)
	default:
		return fmt.Errorf("%w: unsupported entry %T", ErrInvalidInput, entry)
	}
	return nil
}

// Len returns the number of entries in a section.
func (d *ResumeDocument) Len(kind SectionKind) int {
	switch kind {
	case SectionProject:
		return len(d.Projects)
	case SectionSkills:
		return len(d.Skills)
	case SectionAchievements:
		return len(d.Achievements)
	case SectionExperience:
		return len(d.Experience)
	case SectionEducation:
		return len(d.Education)
	default:
		return 0
	}
}

// IsEmpty reports whether a section has no entries.
func (d *ResumeDocument) IsEmpty(kind SectionKind) bool {
	return d.Len(kind) == 0
}

// ensureLists replaces nil lists, e.g. after decoding a document written
// before a section existed.
func (d *ResumeDocument) ensureLists() {
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
	if d.Skills == nil {
		d.Skills = []SkillGroup{}
	}
}

// DecodeResumeDocument parses a serialized document.
func DecodeResumeDocument(data []byte) (*ResumeDocument, error) {
	doc := NewResumeDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode resume document: %w", err)
	}
	doc.ensureLists()
	return doc, nil
}

// SectionResult is the last submitted result of a section chat.
type SectionResult struct {
	Section SectionKind
	ChatID  string
	Entry   SectionEntry
}
