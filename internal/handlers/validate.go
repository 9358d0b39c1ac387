package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for content fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxLabelLen    = 200
	maxNameLen     = 200
	maxSummaryLen  = 1_000
	maxBodyLen     = 100_000
	maxQuestionLen = 1_000
	maxAnswerLen   = 10_000
	maxEmailLen    = 320
	maxSubjectLen  = 300
	maxMessageLen  = 10_000
)

// validateProject checks project inputs and returns the first error found.
func validateProject(title, categoryID, summary, body string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if strings.TrimSpace(categoryID) == "" {
		return "category_id is required"
	}
	if utf8.RuneCountInString(summary) > maxSummaryLen {
		return "summary is too long (max 1,000 characters)"
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "body is too long (max 100,000 characters)"
	}
	return ""
}

// validateCategory checks category inputs and returns the first error found.
func validateCategory(id, label string) string {
	if strings.TrimSpace(id) == "" {
		return "id is required"
	}
	if utf8.RuneCountInString(id) > maxSlugLen {
		return "id is too long (max 300 characters)"
	}
	if strings.TrimSpace(label) == "" {
		return "label is required"
	}
	if utf8.RuneCountInString(label) > maxLabelLen {
		return "label is too long (max 200 characters)"
	}
	return ""
}

// validateName checks a bare natural-key name (technology, feature, tag).
func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	return ""
}

// validateFAQItem checks FAQ item inputs and returns the first error found.
func validateFAQItem(category, question, answer string) string {
	if strings.TrimSpace(category) == "" {
		return "category is required"
	}
	if strings.TrimSpace(question) == "" {
		return "question is required"
	}
	if utf8.RuneCountInString(question) > maxQuestionLen {
		return "question is too long (max 1,000 characters)"
	}
	if strings.TrimSpace(answer) == "" {
		return "answer is required"
	}
	if utf8.RuneCountInString(answer) > maxAnswerLen {
		return "answer is too long (max 10,000 characters)"
	}
	return ""
}

// validateContactMessage checks contact form inputs and returns the first
// error found. Email validation is intentionally shallow: presence, length
// and an @. Delivery happens outside this system.
func validateContactMessage(name, email, subject, body string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if utf8.RuneCountInString(email) > maxEmailLen || !strings.Contains(email, "@") {
		return "email is not valid"
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return "subject is too long (max 300 characters)"
	}
	if strings.TrimSpace(body) == "" {
		return "message is required"
	}
	if utf8.RuneCountInString(body) > maxMessageLen {
		return "message is too long (max 10,000 characters)"
	}
	return ""
}
