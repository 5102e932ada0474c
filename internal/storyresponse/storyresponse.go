package storyresponse

import (
	"net/http"
	"time"

	"github.com/commonfire/storyshare/internal/model"
	"github.com/go-chi/render"
)

// StoryResponse is the response payload for the Story data model.
//
// In the StoryResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
// Render is called in top-down order, like a http handler middleware chain.
type StoryResponse struct {
	*model.Story
}

func NewStoryResponse(story *model.Story) *StoryResponse {
	return &StoryResponse{Story: story}
}

func (rd *StoryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	// Pre-processing before a response is marshalled and sent across the wire
	return nil
}

func NewStoryListResponse(stories []model.Story) []render.Renderer {
	list := []render.Renderer{}
	for i := range stories {
		list = append(list, NewStoryResponse(&stories[i]))
	}

	return list
}

// StatsResponse carries the aggregate metrics the landing page shows:
// how many stories exist, how many distinct authors contributed them, and
// when the most recent one arrived. LastSubmission is omitted while the
// collection is empty.
type StatsResponse struct {
	Stories        int        `json:"stories"`
	Contributors   int        `json:"contributors"`
	LastSubmission *time.Time `json:"lastSubmission,omitempty"`
}

func NewStatsResponse(stories []model.Story) *StatsResponse {
	resp := &StatsResponse{Stories: len(stories)}

	authors := map[string]struct{}{}
	for i := range stories {
		authors[stories[i].Author] = struct{}{}

		if resp.LastSubmission == nil || stories[i].CreatedAt.After(*resp.LastSubmission) {
			t := stories[i].CreatedAt
			resp.LastSubmission = &t
		}
	}
	resp.Contributors = len(authors)

	return resp
}

func (sr *StatsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
