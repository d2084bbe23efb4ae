package entities

import (
	"strings"
	"unicode/utf8"
)

// Question is a single interview question. Immutable once issued.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Answer is a candidate's response to one question together with its
// evaluation. One answer per question id; re-submission replaces in place.
type Answer struct {
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Text       string   `json:"text"`
	Score      int      `json:"score"`
	Feedback   string   `json:"feedback"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
	Skipped    bool     `json:"skipped,omitempty"`
}

// SkippedAnswerText is the placeholder recorded for unanswered questions
const SkippedAnswerText = "Skipped"

// SkippedAnswer synthesizes the placeholder answer for a question the
// candidate never answered. Skipped answers carry no defined score and are
// excluded from the aggregate mean.
func SkippedAnswer(q Question) Answer {
	return Answer{
		QuestionID: q.ID,
		Question:   q.Text,
		Text:       SkippedAnswerText,
		Score:      0,
		Feedback:   "This question was not answered.",
		Skipped:    true,
	}
}

// MinAnswerLength is the trimmed answer length, in characters, at and below
// which an answer scores zero without consulting the evaluation service.
const MinAnswerLength = 10

// TooShort reports whether answer text is too short to be worth evaluating.
// Length is counted in runes so multi-byte scripts are gated the same way.
func TooShort(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) <= MinAnswerLength
}
