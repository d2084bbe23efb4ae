package presenter

import (
	resultDTO "github.com/prepwise/interview-assistant/internal/adapter/dto/result"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
)

// ToResultResponse converts a result entity to its API representation
func ToResultResponse(r *entities.InterviewResult) *resultDTO.ResultResponse {
	if r == nil {
		return nil
	}
	answers := make([]resultDTO.AnswerPayload, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, resultDTO.AnswerPayload{
			QuestionID: a.QuestionID,
			Question:   a.Question,
			Text:       a.Text,
			Score:      a.Score,
			Feedback:   a.Feedback,
			Strengths:  a.Strengths,
			Weaknesses: a.Weaknesses,
			Skipped:    a.Skipped,
		})
	}
	return &resultDTO.ResultResponse{
		ID:              r.ID,
		CandidateID:     r.CandidateID,
		RoomID:          r.RoomID,
		JobRole:         string(r.JobRole),
		ExperienceLevel: string(r.ExperienceLevel),
		TotalScore:      r.TotalScore,
		Feedback:        r.Feedback,
		Strengths:       r.Strengths,
		Improvements:    r.Improvements,
		Answers:         answers,
		CreatedAt:       r.CreatedAt,
	}
}

// ToResultListResponse converts a slice of results
func ToResultListResponse(results []*entities.InterviewResult) []*resultDTO.ResultResponse {
	out := make([]*resultDTO.ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToResultResponse(r))
	}
	return out
}

// ToAnswerEntity converts an answer payload to its entity form
func ToAnswerEntity(a resultDTO.AnswerPayload) entities.Answer {
	return entities.Answer{
		QuestionID: a.QuestionID,
		Question:   a.Question,
		Text:       a.Text,
		Score:      a.Score,
		Feedback:   a.Feedback,
		Strengths:  a.Strengths,
		Weaknesses: a.Weaknesses,
		Skipped:    a.Skipped,
	}
}
