package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Raw section payloads as the service names their fields.

type rawSkills struct {
	CategoryName FlexString  `json:"category_name"`
	Skills       Description `json:"skills"`
}

type rawAchievement struct {
	AchievementTitle FlexString  `json:"achievement_title"`
	Description      Description `json:"description"`
	Timeline         Timeline    `json:"timeline"`
	AchievementType  FlexString  `json:"achievement_type"`
	OrganizationName FlexString  `json:"organization_name"`
}

type rawExperience struct {
	Title            FlexString  `json:"title"`
	OrganizationName FlexString  `json:"organization_name"`
	Type             FlexString  `json:"type"`
	Timeline         Timeline    `json:"timeline"`
	Location         FlexString  `json:"location"`
	Description      Description `json:"description"`
}

type rawEducation struct {
	DegreeOrCourse  FlexString  `json:"degree_or_course"`
	InstitutionName FlexString  `json:"institution_name"`
	FieldOfStudy    FlexString  `json:"field_of_study"`
	Timeline        Timeline    `json:"timeline"`
	GradeOrCGPA     FlexString  `json:"grade_or_cgpa"`
	Location        FlexString  `json:"location"`
	Description     Description `json:"description"`
}

// Normalize maps a raw section payload from the service onto the resume
// schema. It is pure: the same input always yields an equal entry.
// The payload must be a JSON object.
func Normalize(kind SectionKind, raw json.RawMessage) (SectionEntry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: %s payload is not an object", ErrNormalization, kind)
	}

	switch kind {
	case SectionProject:
		return normalizeProject(raw)
	case SectionSkills:
		return normalizeSkills(raw)
	case SectionAchievements:
		return normalizeAchievement(raw)
	case SectionExperience:
		return normalizeExperience(raw)
	case SectionEducation:
		return normalizeEducation(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSection, kind)
	}
}

func normalizeProject(raw json.RawMessage) (SectionEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	p := Project{}
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: project: %v", ErrNormalization, err)
	}
	return p, nil
}

func normalizeSkills(raw json.RawMessage) (SectionEntry, error) {
	var r rawSkills
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, wrapNormalization(SectionSkills, err)
	}
	items := r.Skills.Lines
	if len(r.Skills.Raw) > 0 && !r.Skills.IsZero() {
		items = []string{r.Skills.Text()}
	}
	if items == nil {
		items = []string{}
	}
	return SkillGroup{
		Category: r.CategoryName.String(),
		Items:    items,
	}, nil
}

func normalizeAchievement(raw json.RawMessage) (SectionEntry, error) {
	var r rawAchievement
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, wrapNormalization(SectionAchievements, err)
	}
	return Achievement{
		Title:        r.AchievementTitle.String(),
		Description:  r.Description.Text(),
		Date:         r.Timeline,
		Type:         r.AchievementType.String(),
		Organization: r.OrganizationName.String(),
	}, nil
}

func normalizeExperience(raw json.RawMessage) (SectionEntry, error) {
	var r rawExperience
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, wrapNormalization(SectionExperience, err)
	}
	return Experience{
		Title:       r.Title.String(),
		Company:     r.OrganizationName.String(),
		Type:        r.Type.String(),
		Timeline:    r.Timeline,
		Location:    r.Location.String(),
		Description: r.Description,
	}, nil
}

func normalizeEducation(raw json.RawMessage) (SectionEntry, error) {
	var r rawEducation
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, wrapNormalization(SectionEducation, err)
	}
	return Education{
		Degree:      r.DegreeOrCourse.String(),
		Institution: r.InstitutionName.String(),
		Field:       r.FieldOfStudy.String(),
		Timeline:    r.Timeline,
		GPA:         r.GradeOrCGPA.String(),
		Location:    r.Location.String(),
		Description: r.Description,
	}, nil
}

// DecodeEntry reads a normalized entry back from its serialized form,
// e.g. a section result saved in the session store.
func DecodeEntry(kind SectionKind, data []byte) (SectionEntry, error) {
	var (
		entry SectionEntry
		err   error
	)
	switch kind {
	case SectionProject:
		var p Project
		err = json.Unmarshal(data, &p)
		entry = p
	case SectionSkills:
		var s SkillGroup
		err = json.Unmarshal(data, &s)
		entry = s
	case SectionAchievements:
		var a Achievement
		err = json.Unmarshal(data, &a)
		entry = a
	case SectionExperience:
		var e Experience
		err = json.Unmarshal(data, &e)
		entry = e
	case SectionEducation:
		var e Education
		err = json.Unmarshal(data, &e)
		entry = e
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSection, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s entry: %w", kind, err)
	}
	return entry, nil
}

func wrapNormalization(kind SectionKind, err error) error {
	if errors.Is(err, ErrNormalization) {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrNormalization, kind, err)
}
