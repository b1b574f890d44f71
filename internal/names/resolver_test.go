package names

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_TitleCaseHeader(t *testing.T) {
	text := "Jane Doe\nSenior Software Engineer\njane@example.com"

	assert.Equal(t, "Jane Doe", Resolve(text, "resume.pdf"))
}

func TestResolve_MiddleInitial(t *testing.T) {
	text := "John Q. Public\nData Scientist"

	assert.Equal(t, "John Q. Public", Resolve(text, "resume.pdf"))
}

func TestResolve_AllCapsHeader(t *testing.T) {
	text := "JANE DOE\nProduct Manager"

	assert.Equal(t, "Jane Doe", Resolve(text, "resume.pdf"))
}

func TestResolve_NameLabel(t *testing.T) {
	text := "Name: Maria Garcia Lopez\nPhone: 555-0100"

	assert.Equal(t, "Maria Garcia Lopez", Resolve(text, "resume.pdf"))
}

func TestResolve_NonLatinNameLengthBounds(t *testing.T) {
	// 30 characters but 59 bytes; counting bytes would push the name past
	// the 50-character ceiling and fall back to the filename.
	text := "Name: Александра Константинопольская\nPhone: 555-0100"

	assert.Equal(t, "Александра Константинопольская", Resolve(text, "resume.pdf"))
}

func TestResolve_SkipsImplausibleLines(t *testing.T) {
	// A one-word line and an over-long title-case line both fail the
	// bounds; the real name on line three wins.
	text := "Resume\nSenior Principal Staff Software Engineering Leader Person\nJane Doe"

	assert.Equal(t, "Jane Doe", Resolve(text, "resume.pdf"))
}

func TestResolve_OnlyScansHeader(t *testing.T) {
	filler := strings.Repeat("experience line\n", 12)
	text := filler + "Jane Doe"

	assert.Equal(t, "Jane Doe Resume", Resolve(text, "jane_doe_resume.pdf"),
		"names past the first 10 lines are ignored")
}

func TestResolve_FilenameFallback(t *testing.T) {
	assert.Equal(t, "Jane Doe Resume", Resolve("", "jane-doe-resume.docx"))
	assert.Equal(t, "John Smith", Resolve("no name here", "john_smith.pdf"))
}

func TestResolve_NeverEmpty(t *testing.T) {
	assert.NotEmpty(t, Resolve("", ""))
	assert.Equal(t, "Unknown Candidate", Resolve("", "...pdf"))
}

func TestFromFilename_CleansSeparators(t *testing.T) {
	assert.Equal(t, "Jane Doe Cv 2024", FromFilename("jane.doe-cv_2024.pdf"))
}
