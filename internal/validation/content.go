package validation

import (
	"fmt"
	"strings"
)

const (
	maxTitleLength   = 120
	maxBodyLength    = 5000
	maxTweetLength   = 280
	maxCommentLength = 2000
)

// ValidateTitle checks video and playlist titles.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title is required")
	}
	if len(trimmed) > maxTitleLength {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLength)
	}
	return nil
}

// ValidateDescription checks free-form description fields.
func ValidateDescription(desc string) error {
	if len(desc) > maxBodyLength {
		return fmt.Errorf("description must not exceed %d characters", maxBodyLength)
	}
	return nil
}

// ValidateComment checks comment bodies.
func ValidateComment(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("comment content is required")
	}
	if len(trimmed) > maxCommentLength {
		return fmt.Errorf("comment must not exceed %d characters", maxCommentLength)
	}
	return nil
}

// ValidateTweet checks tweet bodies.
func ValidateTweet(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("tweet content is required")
	}
	if len(trimmed) > maxTweetLength {
		return fmt.Errorf("tweet must not exceed %d characters", maxTweetLength)
	}
	return nil
}
