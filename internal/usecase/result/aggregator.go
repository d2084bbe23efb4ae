package result

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
)

// SessionMeta carries the identifying context an aggregate result is filed
// under.
type SessionMeta struct {
	CandidateID     uuid.UUID
	RoomID          *uuid.UUID
	JobRole         entities.JobRole
	ExperienceLevel entities.ExperienceLevel
}

// Aggregate folds a session's answer set into one immutable result. Every
// question in the session's ordered list appears in the output: answered
// questions keep their recorded evaluation, unanswered ones are synthesized
// as skipped with score 0. The total is the rounded mean over the answers
// that were actually scored; skipped placeholders do not dilute it.
func Aggregate(questions []entities.Question, answers map[string]entities.Answer, meta SessionMeta) *entities.InterviewResult {
	full := make([]entities.Answer, 0, len(questions))
	var scoreSum, scored int
	var strengths, improvements []string

	for _, q := range questions {
		a, ok := answers[q.ID]
		if !ok {
			full = append(full, entities.SkippedAnswer(q))
			continue
		}
		full = append(full, a)
		scoreSum += a.Score
		scored++
		strengths = append(strengths, a.Strengths...)
		improvements = append(improvements, a.Weaknesses...)
	}

	totalScore := 0
	if scored > 0 {
		totalScore = int(math.Round(float64(scoreSum) / float64(scored)))
	}

	return &entities.InterviewResult{
		CandidateID:     meta.CandidateID,
		RoomID:          meta.RoomID,
		JobRole:         meta.JobRole,
		ExperienceLevel: meta.ExperienceLevel,
		TotalScore:      totalScore,
		Feedback:        bandFeedback(totalScore),
		Strengths:       datatypes.NewJSONSlice(dedupe(strengths, entities.MaxResultTags)),
		Improvements:    datatypes.NewJSONSlice(dedupe(improvements, entities.MaxResultTags)),
		Answers:         datatypes.NewJSONSlice(full),
	}
}

// dedupe drops empty tags, deduplicates preserving first-seen order and
// truncates to limit entries
func dedupe(tags []string, limit int) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, limit)
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == limit {
			break
		}
	}
	return out
}

// bandFeedback returns the fixed summary text for a total score band
func bandFeedback(totalScore int) string {
	switch {
	case totalScore >= 80:
		return "Excellent performance. You demonstrated strong knowledge and communicated your answers clearly."
	case totalScore >= 70:
		return "Good performance overall, with a few areas worth tightening up before the real thing."
	case totalScore >= 60:
		return "Satisfactory performance. Review the improvement areas below and practice those topics."
	default:
		return "This interview needs more practice. Work through the improvement areas and try again."
	}
}
