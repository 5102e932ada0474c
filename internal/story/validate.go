package story

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/commonfire/storyshare/internal/config"
)

// ValidateSubmission checks candidate story fields against the submission
// rules and returns nil or the first failing rule's message. The rule order
// is part of the observable contract: a multiply-invalid submission always
// receives the first failure's message, so clients can rely on which
// message they get.
func ValidateSubmission(title, author, tag, content string, limits config.Limits) error {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	tag = strings.TrimSpace(tag)
	content = strings.TrimSpace(content)

	switch {
	case title == "":
		return fmt.Errorf("title is required")
	case author == "":
		return fmt.Errorf("author is required")
	case tag == "":
		return fmt.Errorf("tag is required")
	case utf8.RuneCountInString(content) < limits.ContentMin:
		return fmt.Errorf("content must be at least %d characters", limits.ContentMin)
	case utf8.RuneCountInString(content) > limits.ContentMax:
		return fmt.Errorf("content must be no more than %d characters", limits.ContentMax)
	case utf8.RuneCountInString(title) > limits.TitleMax:
		return fmt.Errorf("title must be no more than %d characters", limits.TitleMax)
	case utf8.RuneCountInString(author) > limits.AuthorMax:
		return fmt.Errorf("author must be no more than %d characters", limits.AuthorMax)
	}

	return nil
}
