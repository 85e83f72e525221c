package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/cyberguard/console/config"
	"github.com/cyberguard/console/models"
	"github.com/cyberguard/console/store"
)

// PostStore is the part of the store the forum handlers use
type PostStore interface {
	MergedPosts(filter store.PostFilter) []models.PostRecord
	SubmitPost(ctx context.Context, in models.PostInput) (models.ForumPost, error)
	FlagPost(ctx context.Context, key models.Key) error
	Post(key models.Key) (models.PostRecord, bool)
	ExportPostsCSV(w io.Writer, filter store.PostFilter) error
}

// Post exposes the merged forum view
type Post struct {
	Store PostStore
}

func postFilterFromQuery(r *http.Request) (store.PostFilter, error) {
	q := r.URL.Query()
	filter := store.PostFilter{Category: q.Get("category"), Search: q.Get("q")}
	if flagged := q.Get("flagged"); flagged != "" {
		b, err := strconv.ParseBool(flagged)
		if err != nil {
			return filter, errors.Wrap(err, "invalid flagged parameter")
		}
		filter.FlaggedOnly = b
	}
	if advice := q.Get("advice"); advice != "" {
		b, err := strconv.ParseBool(advice)
		if err != nil {
			return filter, errors.Wrap(err, "invalid advice parameter")
		}
		filter.AdviceOnly = b
	}
	return filter, nil
}

// PostsHandler returns the merged forum posts, optionally filtered
func (p Post) PostsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := postFilterFromQuery(r)
	if err != nil {
		config.ErrorStatus("failed to parse filter", http.StatusBadRequest, w, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Store.MergedPosts(filter))
}

// CreatePostHandler submits an anonymous forum post, same policy as reports
func (p Post) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	post, err := p.Store.SubmitPost(r.Context(), in)
	var submitErr *store.RemoteSubmitError
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, models.SubmitResponse{Record: models.NewPostRecord(models.OriginLocal, post)})
	case errors.As(err, &submitErr):
		writeJSON(w, http.StatusBadGateway, models.SubmitResponse{
			Record:  models.NewPostRecord(models.OriginLocal, post),
			Warning: err.Error(),
		})
	default:
		storeError("failed to submit post", w, r, err)
	}
}

// FlagPostHandler flags a post for moderation
func (p Post) FlagPostHandler(w http.ResponseWriter, r *http.Request) {
	key, err := keyFromVars(r)
	if err != nil {
		config.ErrorStatus("failed to parse post key", http.StatusBadRequest, w, err)
		return
	}
	if err := p.Store.FlagPost(r.Context(), key); err != nil {
		storeError("failed to flag post", w, r, err)
		return
	}
	rec, _ := p.Store.Post(key)
	writeJSON(w, http.StatusOK, rec)
}

// ExportPostsHandler downloads the merged forum posts as CSV
func (p Post) ExportPostsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := postFilterFromQuery(r)
	if err != nil {
		config.ErrorStatus("failed to parse filter", http.StatusBadRequest, w, err)
		return
	}
	var buf bytes.Buffer
	if err := p.Store.ExportPostsCSV(&buf, filter); err != nil {
		config.ErrorStatus("failed to export posts", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cyberguard-posts.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
