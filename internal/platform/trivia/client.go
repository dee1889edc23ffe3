package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const defaultAmount = 10

// Client talks to the Open Trivia DB HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// RawQuestion mirrors the Open Trivia DB question payload.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// RawCategory mirrors the Open Trivia DB category payload.
type RawCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type questionsResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

type categoriesResponse struct {
	TriviaCategories []RawCategory `json:"trivia_categories"`
}

// FetchQuestions retrieves a question set filtered by category, difficulty
// and question type.
func (c *Client) FetchQuestions(ctx context.Context, amount, categoryID int, difficulty, questionType string) ([]RawQuestion, error) {
	if amount <= 0 {
		amount = defaultAmount
	}

	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("category", strconv.Itoa(categoryID))
	params.Set("difficulty", difficulty)
	params.Set("type", questionType)

	var payload questionsResponse
	if err := c.get(ctx, "/api.php?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("trivia provider response_code=%d", payload.ResponseCode)
	}
	return payload.Results, nil
}

// FetchCategories retrieves the full category taxonomy.
func (c *Client) FetchCategories(ctx context.Context) ([]RawCategory, error) {
	var payload categoriesResponse
	if err := c.get(ctx, "/api_category.php", &payload); err != nil {
		return nil, err
	}
	return payload.TriviaCategories, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trivia provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
