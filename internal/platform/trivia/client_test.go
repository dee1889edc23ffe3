package trivia

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient("https://opentdb.com", &http.Client{Transport: rt})
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestFetchQuestionsSendsFilters(t *testing.T) {
	var seen *http.Request
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return jsonResponse(`{"response_code":0,"results":[{"question":"Q?","correct_answer":"A","incorrect_answers":["B","C","D"]}]}`), nil
	}))

	questions, err := client.FetchQuestions(context.Background(), 10, 9, "easy", "multiple")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "A", questions[0].CorrectAnswer)
	assert.Len(t, questions[0].IncorrectAnswers, 3)

	require.NotNil(t, seen)
	assert.Equal(t, "/api.php", seen.URL.Path)
	assert.Equal(t, "10", seen.URL.Query().Get("amount"))
	assert.Equal(t, "9", seen.URL.Query().Get("category"))
	assert.Equal(t, "easy", seen.URL.Query().Get("difficulty"))
	assert.Equal(t, "multiple", seen.URL.Query().Get("type"))
}

func TestFetchQuestionsUsesDefaultAmountWhenNonPositive(t *testing.T) {
	var seenAmount string
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenAmount = r.URL.Query().Get("amount")
		return jsonResponse(`{"response_code":0,"results":[]}`), nil
	}))

	_, err := client.FetchQuestions(context.Background(), 0, 9, "easy", "multiple")
	require.NoError(t, err)
	assert.Equal(t, "10", seenAmount)
}

func TestFetchQuestionsPropagatesNonOKStatus(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}, nil
	}))

	_, err := client.FetchQuestions(context.Background(), 10, 9, "easy", "multiple")
	require.Error(t, err)
}

func TestFetchQuestionsRejectsProviderErrorCode(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(`{"response_code":1,"results":[]}`), nil
	}))

	_, err := client.FetchQuestions(context.Background(), 10, 9, "easy", "multiple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response_code=1")
}

func TestFetchCategories(t *testing.T) {
	var seenPath string
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenPath = r.URL.Path
		return jsonResponse(`{"trivia_categories":[{"id":9,"name":"General Knowledge"}]}`), nil
	}))

	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api_category.php", seenPath)
	require.Len(t, categories, 1)
	assert.Equal(t, 9, categories[0].ID)
	assert.Equal(t, "General Knowledge", categories[0].Name)
}
