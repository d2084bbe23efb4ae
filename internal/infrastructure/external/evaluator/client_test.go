package evaluator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/pkg/config"
)

func testClient(url string) *Client {
	return NewClient(&config.EvaluatorConfig{BaseURL: url, Timeout: 2 * time.Second})
}

func TestFetchQuestions_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/fetch-questions", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "senior software_engineer", req["role"])
		assert.Equal(t, float64(3), req["num_questions"])

		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "text": "First question"},
			{"id": 2, "text": "Second question"},
			{"id": 3, "text": "Third question"},
		})
	}))
	defer ts.Close()

	questions, err := testClient(ts.URL).FetchQuestions(context.Background(),
		entities.JobRoleSoftwareEngineer, entities.ExperienceLevelSenior, 3)

	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "1", questions[0].ID)
	assert.Equal(t, "First question", questions[0].Text)
}

func TestFetchQuestions_EmptyListIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).FetchQuestions(context.Background(),
		entities.JobRoleDataAnalyst, entities.ExperienceLevelMid, 5)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "fetch-questions", gwErr.Operation)
}

func TestFetchQuestions_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).FetchQuestions(context.Background(),
		entities.JobRoleUXDesigner, entities.ExperienceLevelJunior, 2)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
}

func TestEvaluateAnswer_ScalesScore(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evaluate-answer", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is a goroutine?", req["question"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"score":      0.875,
			"feedback":   "Strong and specific.",
			"strengths":  []string{"clarity"},
			"weaknesses": []string{"examples"},
		})
	}))
	defer ts.Close()

	eval, err := testClient(ts.URL).EvaluateAnswer(context.Background(),
		"What is a goroutine?", "A lightweight thread managed by the runtime.",
		entities.JobRoleSoftwareEngineer, entities.ExperienceLevelMid)

	require.NoError(t, err)
	assert.Equal(t, 88, eval.Score, "0.875 scales to 87.5 and rounds to 88")
	assert.Equal(t, "Strong and specific.", eval.Feedback)
	assert.Equal(t, []string{"clarity"}, eval.Strengths)
	assert.Equal(t, []string{"examples"}, eval.Weaknesses)
}

func TestEvaluateAnswer_ScoreBounds(t *testing.T) {
	for _, score := range []float64{0, 1} {
		score := score
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"score": score, "feedback": "ok"})
		}))

		eval, err := testClient(ts.URL).EvaluateAnswer(context.Background(),
			"q", "a detailed enough answer", entities.JobRoleProductManager, entities.ExperienceLevelMid)
		ts.Close()

		require.NoError(t, err)
		assert.Equal(t, int(score*100), eval.Score)
	}
}

func TestEvaluateAnswer_OutOfRangeScore(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"score": 1.7, "feedback": "broken"})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).EvaluateAnswer(context.Background(),
		"q", "a detailed enough answer", entities.JobRoleProductManager, entities.ExperienceLevelMid)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "evaluate-answer", gwErr.Operation)
}

func TestEvaluateAnswer_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).EvaluateAnswer(context.Background(),
		"q", "a detailed enough answer", entities.JobRoleProductManager, entities.ExperienceLevelMid)

	assert.Error(t, err)
}
