package story

import (
	"context"
	"errors"
	"net/http"

	"github.com/commonfire/storyshare/internal/errresponse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ctxKey int

const storyCtxKey ctxKey = 0

// StoryCtx middleware is used to load a Story object from the URL
// parameters passed through as the request. In case the Story could not be
// found, we stop here and return a 404.
func (rs *Resource) StoryCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storyID := chi.URLParam(r, "storyID")
		if storyID == "" {
			if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
				rs.log.Errorw(err.Error())
			}

			return
		}

		story, err := rs.store.Get(storyID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				rs.log.Errorw("get story", "id", storyID, "error", err)
			}

			if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
				rs.log.Errorw(err.Error())
			}

			return
		}

		ctx := context.WithValue(r.Context(), storyCtxKey, story)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
