package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/pkg/config"
)

// GatewayError marks a failed or malformed exchange with the evaluation
// oracle. It is always recoverable: callers apply local fallbacks.
type GatewayError struct {
	Operation string
	Err       error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("evaluator %s: %v", e.Operation, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Evaluation is a scored answer as returned by the oracle, already scaled
// to the 0-100 range.
type Evaluation struct {
	Score      int
	Feedback   string
	Strengths  []string
	Weaknesses []string
}

// Client talks to the external evaluation service. Every call is a single
// synchronous request with no retry; degradation is the caller's job.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an evaluator client from config
func NewClient(cfg *config.EvaluatorConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type fetchQuestionsRequest struct {
	Role         string `json:"role"`
	NumQuestions int    `json:"num_questions"`
}

type questionPayload struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// FetchQuestions asks the oracle for count questions for the given role and
// level. The level is folded into the role description on the wire.
func (c *Client) FetchQuestions(ctx context.Context, role entities.JobRole, level entities.ExperienceLevel, count int) ([]entities.Question, error) {
	reqBody := fetchQuestionsRequest{
		Role:         roleDescription(role, level),
		NumQuestions: count,
	}

	var payload []questionPayload
	if err := c.post(ctx, "/fetch-questions", reqBody, &payload); err != nil {
		return nil, &GatewayError{Operation: "fetch-questions", Err: err}
	}
	if len(payload) == 0 {
		return nil, &GatewayError{Operation: "fetch-questions", Err: fmt.Errorf("empty question list")}
	}

	questions := make([]entities.Question, 0, len(payload))
	for _, q := range payload {
		if q.Text == "" {
			return nil, &GatewayError{Operation: "fetch-questions", Err: fmt.Errorf("question %d has no text", q.ID)}
		}
		questions = append(questions, entities.Question{
			ID:   strconv.Itoa(q.ID),
			Text: q.Text,
		})
	}
	return questions, nil
}

type evaluateAnswerRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Role     string `json:"role"`
}

type evaluateAnswerResponse struct {
	Score      float64  `json:"score"`
	Feedback   string   `json:"feedback"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// EvaluateAnswer scores one answer. The oracle returns a normalized score in
// [0.0, 1.0] which is scaled to 0-100 and rounded.
func (c *Client) EvaluateAnswer(ctx context.Context, question, answer string, role entities.JobRole, level entities.ExperienceLevel) (*Evaluation, error) {
	reqBody := evaluateAnswerRequest{
		Question: question,
		Answer:   answer,
		Role:     roleDescription(role, level),
	}

	var payload evaluateAnswerResponse
	if err := c.post(ctx, "/evaluate-answer", reqBody, &payload); err != nil {
		return nil, &GatewayError{Operation: "evaluate-answer", Err: err}
	}
	if payload.Score < 0 || payload.Score > 1 {
		return nil, &GatewayError{Operation: "evaluate-answer", Err: fmt.Errorf("score %v out of range", payload.Score)}
	}

	return &Evaluation{
		Score:      int(math.Round(payload.Score * 100)),
		Feedback:   payload.Feedback,
		Strengths:  payload.Strengths,
		Weaknesses: payload.Weaknesses,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("evaluator returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func roleDescription(role entities.JobRole, level entities.ExperienceLevel) string {
	if level == "" {
		return string(role)
	}
	return fmt.Sprintf("%s %s", level, role)
}
