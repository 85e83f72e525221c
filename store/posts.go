package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cyberguard/console/models"
)

const defaultSchool = "Unknown"

// AddLocalPost records in as a new anonymous local post and returns it
func (s *Store) AddLocalPost(in models.PostInput) models.ForumPost {
	school := in.School
	if school == "" {
		school = defaultSchool
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.ForumPost{
		ID:             int64(len(s.localPosts)) + 1,
		Title:          in.Title,
		Content:        in.Content,
		Category:       in.Category.DisplayName(),
		Author:         models.AnonymousAuthor,
		Timestamp:      s.now().Format(time.RFC3339),
		Tags:           in.Tags(),
		IsAdviceSeeker: in.IsAdviceSeeker,
		School:         school,
	}
	s.localPosts = append([]models.ForumPost{p}, s.localPosts...)
	return copyPost(p)
}

// SubmitPost keeps the post locally and sends it to the backend, same policy as SubmitReport
func (s *Store) SubmitPost(ctx context.Context, in models.PostInput) (models.ForumPost, error) {
	if err := validateStruct(in); err != nil {
		return models.ForumPost{}, err
	}

	local := s.AddLocalPost(in)
	created, err := s.api.CreatePost(ctx, models.NewCreatePost(in))
	if err != nil {
		zap.S().Warnw("post kept locally, backend rejected it", "id", local.ID, "error", err)
		return local, &RemoteSubmitError{Op: "submit post", Err: writeError("create post", err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.localPosts {
		if s.localPosts[i].ID == local.ID {
			s.localPosts[i].RemoteID = created.ID
			local = copyPost(s.localPosts[i])
			break
		}
	}
	return local, nil
}

// FetchPosts fetches every forum post and, on success, replaces the remote collection. Posts
// flagged from this console stay flagged even when the backend does not report them so.
func (s *Store) FetchPosts(ctx context.Context) ([]models.ForumPost, error) {
	incoming, err := s.api.GetPosts(ctx)
	if err != nil {
		err = readError("fetch posts", err)
		zap.S().Warnw("failed to fetch posts", "error", err)
		return nil, err
	}

	posts := make([]models.ForumPost, 0, len(incoming))
	seen := make(map[int64]bool, len(incoming))
	for _, p := range incoming {
		if seen[p.ID] {
			zap.S().Warnw("backend returned a duplicate post id, keeping the first", "id", p.ID)
			continue
		}
		seen[p.ID] = true
		posts = append(posts, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		zap.S().Debugw("discarding posts response, store closed", "count", len(posts))
		return posts, nil
	}
	for i := range posts {
		if s.flagged[posts[i].ID] {
			posts[i].Flagged = true
		}
	}
	s.remotePosts = posts
	return copyPosts(posts), nil
}

// FlagPost asks the backend to flag a post for moderation and marks it flagged once the backend
// accepted. Only admins may do this. A local post can only be flagged after the backend accepted it.
func (s *Store) FlagPost(ctx context.Context, key models.Key) error {
	if !s.role.IsAdmin() {
		return &ForbiddenError{Op: "flag post"}
	}

	rec, ok := s.Post(key)
	if !ok {
		return ErrNotFound
	}
	remoteID := rec.ID
	if key.Origin == models.OriginLocal {
		remoteID = rec.RemoteID
	}
	if remoteID == 0 {
		return &RemoteMutationError{Op: "flag post", Err: ErrNotSynced}
	}

	if err := s.api.FlagPost(ctx, remoteID, s.role.Token()); err != nil {
		zap.S().Warnw("failed to flag post", "key", key.String(), "error", err)
		return &RemoteMutationError{Op: "flag post", Err: writeError("flag post", err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flagged[remoteID] = true
	for i := range s.localPosts {
		if (key.Origin == models.OriginLocal && s.localPosts[i].ID == key.ID) || s.localPosts[i].RemoteID == remoteID {
			s.localPosts[i].Flagged = true
		}
	}
	for i := range s.remotePosts {
		if s.remotePosts[i].ID == remoteID {
			s.remotePosts[i].Flagged = true
		}
	}
	zap.S().Infow("post flagged", "key", key.String(), "remoteId", remoteID)
	return nil
}

// Post looks a forum post up by its composite key
func (s *Store) Post(key models.Key) (models.PostRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := s.remotePosts
	if key.Origin == models.OriginLocal {
		posts = s.localPosts
	}
	for _, p := range posts {
		if p.ID == key.ID {
			return models.NewPostRecord(key.Origin, copyPost(p)), true
		}
	}
	return models.PostRecord{}, false
}

func copyPost(p models.ForumPost) models.ForumPost {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

func copyPosts(in []models.ForumPost) []models.ForumPost {
	out := make([]models.ForumPost, len(in))
	for i, p := range in {
		out[i] = copyPost(p)
	}
	return out
}
