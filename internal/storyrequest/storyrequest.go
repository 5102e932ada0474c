package storyrequest

import (
	"net/http"
	"strings"
)

// StoryRequest is the request payload for submitting a story.
//
// NOTE: It's good practice to have well defined request and response payloads
// so you can manage the specific inputs and outputs for clients. The id and
// createdAt fields are never accepted from the client — the server assigns
// them on creation.
type StoryRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// Bind on StoryRequest runs after the unmarshalling is complete, its
// a good time to focus some post-processing after a decoding. All fields
// are trimmed of surrounding whitespace before validation and storage.
func (s *StoryRequest) Bind(r *http.Request) error {
	s.Title = strings.TrimSpace(s.Title)
	s.Author = strings.TrimSpace(s.Author)
	s.Tag = strings.TrimSpace(s.Tag)
	s.Content = strings.TrimSpace(s.Content)

	return nil
}
