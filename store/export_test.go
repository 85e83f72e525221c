package store

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberguard/console/models"
	"github.com/cyberguard/console/remote/mocks"
)

func TestExportPostsCSV(t *testing.T) {
	s := newTestStore(new(mocks.API), visitor)
	s.AddLocalPost(models.PostInput{Title: "Comma, inside", Content: "line one\nline two", Category: models.CategoryVerbal, School: "Central High School"})

	var buf bytes.Buffer
	require.NoError(t, s.ExportPostsCSV(&buf, PostFilter{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, postsCSVHeader, rows[0])
	assert.Equal(t, []string{
		"local", "1", "Comma, inside", "line one\nline two", "Verbal Bullying", "Anonymous",
		"2025-05-06T09:30:00Z", "false", "Central High School", "verbal; school",
	}, rows[1])
}

func TestExportPostsCSV_Filtered(t *testing.T) {
	s := newTestStore(new(mocks.API), visitor, WithDemoData())

	var buf bytes.Buffer
	require.NoError(t, s.ExportPostsCSV(&buf, PostFilter{Category: "physical"}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
