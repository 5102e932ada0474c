package story

import (
	"net/http"
	"time"

	"github.com/commonfire/storyshare/internal/config"
	"github.com/commonfire/storyshare/internal/errresponse"
	"github.com/commonfire/storyshare/internal/model"
	"github.com/commonfire/storyshare/internal/storyrequest"
	"github.com/commonfire/storyshare/internal/storyresponse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
)

// Resource bundles the story handlers with their dependencies: the
// file-backed store, the logger, and the submission limits.
type Resource struct {
	store  *Store
	log    *zap.SugaredLogger
	limits config.Limits

	accepted metric.Int64Counter
	rejected metric.Int64Counter
}

func NewResource(store *Store, log *zap.SugaredLogger, limits config.Limits) *Resource {
	meter := global.Meter("storyshare")

	return &Resource{
		store:  store,
		log:    log,
		limits: limits,
		accepted: metric.Must(meter).NewInt64Counter(
			"api/stories/accepted_count",
			metric.WithDescription("Count of story submissions accepted and persisted"),
		),
		rejected: metric.Must(meter).NewInt64Counter(
			"api/stories/rejected_count",
			metric.WithDescription("Count of story submissions rejected by validation"),
		),
	}
}

// Routes returns the RESTy router for the "stories" resource.
func (rs *Resource) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", rs.ListStories)
	r.Post("/", rs.CreateStory)

	r.Route("/{storyID}", func(r chi.Router) {
		r.Use(rs.StoryCtx) // Load the *Story on the request context
		r.Get("/", rs.GetStory)
	})

	return r
}

// ListStories returns the full collection in insertion order. Most-recent
// -first presentation is left to the client.
func (rs *Resource) ListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := rs.store.Load()
	if err != nil {
		rs.log.Errorw("load stories", "error", err)

		if err := render.Render(w, r, errresponse.ErrInternal); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}

	if err := render.RenderList(w, r, storyresponse.NewStoryListResponse(stories)); err != nil {
		if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}
}

// CreateStory validates the posted submission, persists the new Story and
// returns it back to the client as an acknowledgement.
func (rs *Resource) CreateStory(w http.ResponseWriter, r *http.Request) {
	data := &storyrequest.StoryRequest{}
	if err := render.Bind(r, data); err != nil {
		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}

	if err := ValidateSubmission(data.Title, data.Author, data.Tag, data.Content, rs.limits); err != nil {
		rs.rejected.Add(r.Context(), 1)

		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}

	story := model.Story{
		ID:        uuid.NewString(),
		Title:     data.Title,
		Author:    data.Author,
		Tag:       data.Tag,
		Content:   data.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := rs.store.Append(story); err != nil {
		rs.log.Errorw("append story", "error", err)

		if err := render.Render(w, r, errresponse.ErrInternal); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}

	rs.accepted.Add(r.Context(), 1)

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, storyresponse.NewStoryResponse(&story)); err != nil {
		rs.log.Errorw(err.Error())
	}
}

// GetStory returns the specific Story. You'll notice it just fetches the
// Story right off the context, as its understood that if we made it this
// far, the Story must be on the context. In case its not due to a bug, then
// it will panic, and our Recoverer will save us.
func (rs *Resource) GetStory(w http.ResponseWriter, r *http.Request) {
	// nolint
	story := r.Context().Value(storyCtxKey).(*model.Story)

	if err := render.Render(w, r, storyresponse.NewStoryResponse(story)); err != nil {
		if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}
}

// GetStats reports the aggregate metrics for the landing page: story count,
// distinct contributor count and the most recent submission time.
func (rs *Resource) GetStats(w http.ResponseWriter, r *http.Request) {
	stories, err := rs.store.Load()
	if err != nil {
		rs.log.Errorw("load stories", "error", err)

		if err := render.Render(w, r, errresponse.ErrInternal); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}

	if err := render.Render(w, r, storyresponse.NewStatsResponse(stories)); err != nil {
		if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
			rs.log.Errorw(err.Error())
		}

		return
	}
}
