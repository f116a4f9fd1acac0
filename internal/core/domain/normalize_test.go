package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Skills(t *testing.T) {
	raw := json.RawMessage(`{"category_name":"Programming Languages","skills":["Go","Python"]}`)

	entry, err := Normalize(SectionSkills, raw)
	require.NoError(t, err)

	assert.Equal(t, SkillGroup{
		Category: "Programming Languages",
		Items:    []string{"Go", "Python"},
	}, entry)
}

func TestNormalize_SkillsAsString(t *testing.T) {
	entry, err := Normalize(SectionSkills, json.RawMessage(`{"category_name":"Tools","skills":"Docker"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Docker"}, entry.(SkillGroup).Items)
}

func TestNormalize_SkillsMissingItems(t *testing.T) {
	entry, err := Normalize(SectionSkills, json.RawMessage(`{"category_name":"Tools"}`))
	require.NoError(t, err)
	assert.NotNil(t, entry.(SkillGroup).Items)
	assert.Empty(t, entry.(SkillGroup).Items)
}

func TestNormalize_AchievementDescription(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "list is joined with spaces",
			raw:      `{"achievement_title":"Hackathon","description":["Won first place","out of 40 teams"]}`,
			expected: "Won first place out of 40 teams",
		},
		{
			name:     "string passes through",
			raw:      `{"achievement_title":"Hackathon","description":"Won first place"}`,
			expected: "Won first place",
		},
		{
			name:     "missing is empty",
			raw:      `{"achievement_title":"Hackathon"}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Normalize(SectionAchievements, json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, entry.(Achievement).Description)
		})
	}
}

func TestNormalize_AchievementFields(t *testing.T) {
	raw := `{
		"achievement_title": "Dean's List",
		"description": "Top 5%",
		"timeline": "Spring 2022",
		"achievement_type": "Academic",
		"organization_name": "State University"
	}`

	entry, err := Normalize(SectionAchievements, json.RawMessage(raw))
	require.NoError(t, err)

	assert.Equal(t, Achievement{
		Title:        "Dean's List",
		Description:  "Top 5%",
		Date:         Timeline{Text: "Spring 2022"},
		Type:         "Academic",
		Organization: "State University",
	}, entry)
}

func TestNormalize_ExperienceKeepsTimelineLocationDescription(t *testing.T) {
	raw := `{
		"title": "Backend Engineer",
		"organization_name": "Acme",
		"type": "Full-time",
		"timeline": {"start_date": "2021-01", "end_date": "2023-06"},
		"location": "Berlin",
		"description": ["Built the billing API", "Cut p99 latency by half"]
	}`

	entry, err := Normalize(SectionExperience, json.RawMessage(raw))
	require.NoError(t, err)

	exp, ok := entry.(Experience)
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", exp.Title)
	assert.Equal(t, "Acme", exp.Company)
	assert.Equal(t, "Full-time", exp.Type)
	assert.Equal(t, Timeline{StartDate: "2021-01", EndDate: "2023-06"}, exp.Timeline)
	assert.Equal(t, "Berlin", exp.Location)
	assert.Equal(t, Description{Lines: []string{"Built the billing API", "Cut p99 latency by half"}, IsList: true}, exp.Description)
}

func TestNormalize_EducationKeepsTimelineLocationDescription(t *testing.T) {
	raw := `{
		"degree_or_course": "BSc",
		"institution_name": "State University",
		"field_of_study": "Computer Science",
		"timeline": "2016 - 2020",
		"grade_or_cgpa": 3.8,
		"location": "Austin",
		"description": "Thesis on distributed caches"
	}`

	entry, err := Normalize(SectionEducation, json.RawMessage(raw))
	require.NoError(t, err)

	assert.Equal(t, Education{
		Degree:      "BSc",
		Institution: "State University",
		Field:       "Computer Science",
		Timeline:    Timeline{Text: "2016 - 2020"},
		GPA:         "3.8",
		Location:    "Austin",
		Description: NewTextDescription("Thesis on distributed caches"),
	}, entry)
}

func TestNormalize_KeepsOddTimelineAndDescriptionShapes(t *testing.T) {
	raw := `{
		"title": "Researcher",
		"organization_name": "Lab",
		"timeline": ["2020", "2021"],
		"description": {"k": "v"}
	}`

	entry, err := Normalize(SectionExperience, json.RawMessage(raw))
	require.NoError(t, err)

	exp, ok := entry.(Experience)
	require.True(t, ok)
	assert.Equal(t, "2020 - 2021", exp.Timeline.Range("Present"))
	assert.Equal(t, "k: v", exp.Description.Text())

	out, err := json.Marshal(exp)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.JSONEq(t, `["2020","2021"]`, string(fields["timeline"]))
	assert.JSONEq(t, `{"k":"v"}`, string(fields["description"]))

	decoded, err := DecodeEntry(SectionExperience, out)
	require.NoError(t, err)
	assert.Equal(t, exp, decoded)
}

func TestNormalize_EducationWithObjectDescription(t *testing.T) {
	entry, err := Normalize(SectionEducation, json.RawMessage(`{"degree_or_course":"BSc","description":{"k":"v"}}`))
	require.NoError(t, err)

	edu, ok := entry.(Education)
	require.True(t, ok)
	assert.Equal(t, "k: v", edu.Description.Text())
}

func TestNormalize_SkillsAsObjectBecomeOneItem(t *testing.T) {
	entry, err := Normalize(SectionSkills, json.RawMessage(`{"category_name":"Lang","skills":{"primary":"Go"}}`))
	require.NoError(t, err)
	assert.Equal(t, SkillGroup{Category: "Lang", Items: []string{"primary: Go"}}, entry)
}

func TestNormalize_ProjectIsIdentity(t *testing.T) {
	raw := `{"title":"resumechat","role":"author","stars":12,"tags":["go","tui"]}`

	entry, err := Normalize(SectionProject, json.RawMessage(raw))
	require.NoError(t, err)

	p, ok := entry.(Project)
	require.True(t, ok)
	assert.Equal(t, "resumechat", p.Title())
	assert.Equal(t, "author", p.Role())
	assert.Equal(t, json.Number("12"), p["stars"])

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestNormalize_IsDeterministic(t *testing.T) {
	payloads := map[SectionKind]string{
		SectionProject:      `{"title":"p","timeline":{"start_date":"2020","end_date":null}}`,
		SectionSkills:       `{"category_name":"Languages","skills":["Go"]}`,
		SectionAchievements: `{"achievement_title":"A","description":["x","y"],"timeline":"2020"}`,
		SectionExperience:   `{"title":"T","organization_name":"O","timeline":"2020","description":"d"}`,
		SectionEducation:    `{"degree_or_course":"D","grade_or_cgpa":true}`,
	}

	for kind, raw := range payloads {
		t.Run(kind.String(), func(t *testing.T) {
			first, err := Normalize(kind, json.RawMessage(raw))
			require.NoError(t, err)
			second, err := Normalize(kind, json.RawMessage(raw))
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Equal(t, kind, first.Section())
		})
	}
}

func TestNormalize_RejectsNonObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `null`, `42`, ``} {
		for _, kind := range AllSections() {
			_, err := Normalize(kind, json.RawMessage(raw))
			assert.ErrorIs(t, err, ErrNormalization, "%s payload %q", kind, raw)
		}
	}
}

func TestNormalize_RejectsNestedGarbage(t *testing.T) {
	_, err := Normalize(SectionExperience, json.RawMessage(`{"title":{"nested":true}}`))
	assert.ErrorIs(t, err, ErrNormalization)
}

func TestNormalize_InvalidSection(t *testing.T) {
	_, err := Normalize(SectionKind("hobbies"), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidSection)
}

func TestDecodeEntry_ReadsSerializedEntry(t *testing.T) {
	original, err := Normalize(SectionEducation, json.RawMessage(`{"degree_or_course":"MSc","timeline":{"start_date":"2020","end_date":"2022"}}`))
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := DecodeEntry(SectionEducation, data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeEntry_ProjectKeepsLargeIntegers(t *testing.T) {
	original, err := Normalize(SectionProject, json.RawMessage(`{"title":"Ledger","id":12345678901234567890}`))
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Ledger","id":12345678901234567890}`, string(data))

	decoded, err := DecodeEntry(SectionProject, data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
	assert.Equal(t, json.Number("12345678901234567890"), decoded.(Project)["id"])
}
