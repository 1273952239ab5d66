package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekindev/coursesearch/internal/pkg/apperrors"
)

func TestParseBasicCatalog(t *testing.T) {
	input := strings.Join([]string{
		"Subject,Number,Name,Description,Credit Hours",
		"CS,101,Intro to Programming,Basics of programming.,3 hours.",
		"CS,225,Data Structures,Lists and trees.,4",
	}, "\n")

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "CS", records[0].Subject)
	assert.Equal(t, "101", records[0].Number)
	assert.Equal(t, "Intro to Programming", records[0].Name)
	assert.Equal(t, "Basics of programming.", records[0].Description)
	assert.Equal(t, "3 hours.", records[0].CreditHours)
}

func TestParseSkipsIncompleteRows(t *testing.T) {
	input := strings.Join([]string{
		"subject,number,name,description",
		"CS,101,Intro,ok",
		",102,Missing Subject,skip",
		"CS,,Missing Number,skip",
		"CS,103,,skip",
		"MATH,241,Calc III,fields",
	}, "\n")

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "101", records[0].Number)
	assert.Equal(t, "MATH", records[1].Subject)
}

func TestParseCreditHourSynonyms(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"credit hours", "credit hours", "3"},
		{"credit_hours", "credit_hours", "3"},
		{"credits", "credits", "3"},
		{"credit", "credit", "3"},
		{"hours", "hours", "3"},
		{"combined fallback", "total credit-hour load", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "subject,number,name," + tt.header + "\nCS,101,Intro,3\n"
			records, err := Parse(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].CreditHours)
		})
	}
}

func TestParseMissingCreditColumnDefaultsEmpty(t *testing.T) {
	input := "subject,number,name\nCS,101,Intro\n"
	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].CreditHours)
	assert.Empty(t, records[0].Description)
}

func TestParseEmptySource(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSourceNotFound))
}

func TestParseHeaderOnlyYieldsNoRecords(t *testing.T) {
	records, err := Parse(strings.NewReader("subject,number,name\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSourceNotFound))
}

func TestDefaultPath(t *testing.T) {
	got := DefaultPath("coursedata", "asu")
	assert.Equal(t, filepath.Join("coursedata", "asu", "ASU_courses.csv"), got)
}

func TestRecordValidate(t *testing.T) {
	valid := Record{Subject: "CS", Number: "101", Name: "Intro"}
	assert.NoError(t, valid.Validate())

	for _, record := range []Record{
		{Number: "101", Name: "Intro"},
		{Subject: "CS", Name: "Intro"},
		{Subject: "CS", Number: "101"},
	} {
		err := record.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	}
}
