package summary

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	placeholderNoSummary = "No summary generated."
	placeholderError     = "Error generating summary."
)

type Service interface {
	// Summarize produces a short progress summary for the student from the
	// tutor's session notes. It is best-effort: on any failure or missing
	// configuration it returns a placeholder string, never an error, so the
	// surrounding notes-saving flow is never blocked.
	Summarize(ctx context.Context, studentName string, notes []string) string
}

type ServiceImpl struct {
	client Client
}

// NewService accepts a nil client when no AI backend is configured; Summarize
// then always returns the placeholder.
func NewService(client Client) *ServiceImpl {
	return &ServiceImpl{client: client}
}

func (s *ServiceImpl) Summarize(ctx context.Context, studentName string, notes []string) string {
	if s.client == nil {
		log.Debug("AI summary requested without a configured client")
		return placeholderError
	}

	prompt := fmt.Sprintf(
		"Based on these tutoring notes for %s, please provide a short, professional progress summary and suggest one area for improvement. Notes: %s",
		studentName, strings.Join(notes, "; "))

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		log.Errorf("failed to generate summary: %v", err)
		return placeholderError
	}
	if text == "" {
		return placeholderNoSummary
	}
	return text
}
