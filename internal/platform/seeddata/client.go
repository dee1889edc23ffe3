package seeddata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// BasicUser is one record of the hosted basic-user seed dataset. Passwords
// arrive in plaintext and must be hashed before storage.
type BasicUser struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Password       string `json:"password"`
	Role           string `json:"role"`
}

// Client fetches the fixed basic-user dataset from its hosted URL.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, httpClient: httpClient}
}

func (c *Client) FetchBasicUsers(ctx context.Context) ([]BasicUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed dataset returned status %d", resp.StatusCode)
	}

	var users []BasicUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}
