package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a typed HTTP client for the storyshare API.
type Client struct {
	http.Client
	Addr string
}

// Story mirrors the server's story record.
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Tag       string    `json:"tag"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submission is the payload for creating a story.
type Submission struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// Stats mirrors the server's aggregate metrics.
type Stats struct {
	Stories        int        `json:"stories"`
	Contributors   int        `json:"contributors"`
	LastSubmission *time.Time `json:"lastSubmission,omitempty"`
}

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest("GET", c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// ListStories returns the full story collection in insertion order.
func (c *Client) ListStories() ([]Story, error) {
	resp, err := c.Get(c.Addr + "/api/stories")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var stories []Story
	if err := json.NewDecoder(resp.Body).Decode(&stories); err != nil {
		return nil, err
	}

	return stories, nil
}

// CreateStory submits a story and returns the created record.
func (c *Client) CreateStory(sub Submission) (*Story, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, err
	}

	resp, err := c.Post(c.Addr+"/api/stories", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var story Story
	if err := json.NewDecoder(resp.Body).Decode(&story); err != nil {
		return nil, err
	}

	return &story, nil
}

// Stats returns the aggregate metrics.
func (c *Client) Stats() (*Stats, error) {
	resp, err := c.Get(c.Addr + "/api/stats")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
		apiErr.Message = ""
	}

	return apiErr
}
