package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"new":         StatusNew,
		"NEW":         StatusNew,
		"In Progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"inprogress":  StatusInProgress,
		"IN_PROGRESS": StatusInProgress,
		" resolved ":  StatusResolved,
	}
	for in, want := range cases {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseStatus("escalated")
	assert.False(t, ok)
}

func TestIncidentReport_ToReport(t *testing.T) {
	ir := IncidentReport{
		ID:          9,
		Title:       "Threats",
		Description: "Threatening messages sent via text",
		Location:    "Text Message",
		Urgency:     "HIGH",
		Status:      "in progress",
		CreatedAt:   "2025-05-04T10:11:12Z",
	}

	r := ir.ToReport()
	assert.Equal(t, Report{
		ID:          9,
		Type:        "Threats",
		Platform:    "Text Message",
		Status:      StatusInProgress,
		Severity:    SeverityHigh,
		Date:        "2025-05-04",
		Description: "Threatening messages sent via text",
	}, r)
}

func TestIncidentReport_ToReportKeepsUnknownStatus(t *testing.T) {
	r := IncidentReport{ID: 1, Status: "Escalated"}.ToReport()
	assert.Equal(t, Status("Escalated"), r.Status)

	r = IncidentReport{ID: 2}.ToReport()
	assert.Equal(t, StatusNew, r.Status)
}

func TestReportInput_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(ReportInput{Title: "x", Description: "short desc ok", Urgency: "high"})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "x", m["title"])
	assert.Equal(t, "short desc ok", m["description"])
	assert.Equal(t, "high", m["urgency"])
	assert.NotContains(t, m, "reportedBy")
}

func TestPostInput_Tags(t *testing.T) {
	in := PostInput{Category: CategoryVerbal, IsAdviceSeeker: true, School: "Central High School"}
	assert.Equal(t, []string{"advice-needed", "verbal", "school"}, in.Tags())

	in = PostInput{Category: CategoryCyber}
	assert.Equal(t, []string{"cyber"}, in.Tags())
}

func TestNewCreatePost(t *testing.T) {
	cp := NewCreatePost(PostInput{Title: "t", Content: "c", Category: CategoryPhysical})
	assert.Equal(t, "Physical Bullying", cp.Category)
	assert.Equal(t, "physical", cp.Type)
	assert.True(t, cp.IsAnonymous)
}

func TestMatchesCategory(t *testing.T) {
	assert.True(t, MatchesCategory("Cyberbullying", "cyber"))
	assert.True(t, MatchesCategory("cyber", "CYBER"))
	assert.True(t, MatchesCategory("Verbal Bullying", "verbal bullying"))
	assert.False(t, MatchesCategory("Verbal Bullying", "physical"))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("local", "3")
	require.NoError(t, err)
	assert.Equal(t, Key{Origin: OriginLocal, ID: 3}, k)
	assert.Equal(t, "local:3", k.String())

	_, err = ParseKey("elsewhere", "3")
	assert.Error(t, err)

	_, err = ParseKey("remote", "abc")
	assert.Error(t, err)
}
