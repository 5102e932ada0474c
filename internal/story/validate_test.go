package story

import (
	"strings"
	"testing"

	"github.com/commonfire/storyshare/internal/config"
	"github.com/stretchr/testify/assert"
)

var limits = config.DefaultLimits()

func TestValidateSubmission_Valid(t *testing.T) {
	err := ValidateSubmission("Title", "Author", "tag", strings.Repeat("x", 50), limits)
	assert.NoError(t, err)
}

func TestValidateSubmission_ContentBoundaries(t *testing.T) {
	content := func(n int) string { return strings.Repeat("x", n) }

	err := ValidateSubmission("T", "A", "tag", content(39), limits)
	assert.EqualError(t, err, "content must be at least 40 characters")

	assert.NoError(t, ValidateSubmission("T", "A", "tag", content(40), limits))
	assert.NoError(t, ValidateSubmission("T", "A", "tag", content(1800), limits))

	err = ValidateSubmission("T", "A", "tag", content(1801), limits)
	assert.EqualError(t, err, "content must be no more than 1800 characters")
}

func TestValidateSubmission_ContentTrimmedBeforeCounting(t *testing.T) {
	padded := "   " + strings.Repeat("x", 39) + "   "
	err := ValidateSubmission("T", "A", "tag", padded, limits)
	assert.EqualError(t, err, "content must be at least 40 characters")

	padded = "   " + strings.Repeat("x", 40) + "   "
	assert.NoError(t, ValidateSubmission("T", "A", "tag", padded, limits))
}

func TestValidateSubmission_RequiredFields(t *testing.T) {
	content := strings.Repeat("x", 50)

	err := ValidateSubmission("", "A", "tag", content, limits)
	assert.EqualError(t, err, "title is required")

	err = ValidateSubmission("T", "   ", "tag", content, limits)
	assert.EqualError(t, err, "author is required")

	err = ValidateSubmission("T", "A", "", content, limits)
	assert.EqualError(t, err, "tag is required")
}

// A submission failing several rules gets the first rule's message; clients
// rely on which message they receive.
func TestValidateSubmission_OrderPrecedence(t *testing.T) {
	err := ValidateSubmission("", "", "tag", strings.Repeat("x", 50), limits)
	assert.EqualError(t, err, "title is required")

	err = ValidateSubmission("", "", "", "", limits)
	assert.EqualError(t, err, "title is required")

	// Oversized content is reported before an oversized title.
	err = ValidateSubmission(strings.Repeat("t", 121), "A", "tag", strings.Repeat("x", 1801), limits)
	assert.EqualError(t, err, "content must be no more than 1800 characters")
}

func TestValidateSubmission_TitleAndAuthorMaxima(t *testing.T) {
	content := strings.Repeat("x", 50)

	assert.NoError(t, ValidateSubmission(strings.Repeat("t", 120), "A", "tag", content, limits))
	err := ValidateSubmission(strings.Repeat("t", 121), "A", "tag", content, limits)
	assert.EqualError(t, err, "title must be no more than 120 characters")

	assert.NoError(t, ValidateSubmission("T", strings.Repeat("a", 80), "tag", content, limits))
	err = ValidateSubmission("T", strings.Repeat("a", 81), "tag", content, limits)
	assert.EqualError(t, err, "author must be no more than 80 characters")
}
