package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cyberguard/console/models"
)

// PostAPI contains the forum endpoints of the backend
type PostAPI interface {
	GetPosts(ctx context.Context) ([]models.ForumPost, error)
	CreatePost(ctx context.Context, post models.CreatePost) (*models.ForumPost, error)
	FlagPost(ctx context.Context, postID int64, token string) error
}

// GetPosts fetches every forum post
func (c *Client) GetPosts(ctx context.Context) ([]models.ForumPost, error) {
	var posts []models.ForumPost
	if err := c.do(ctx, "fetch posts", http.MethodGet, "/api/posts", "", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost creates an anonymous forum post
func (c *Client) CreatePost(ctx context.Context, post models.CreatePost) (*models.ForumPost, error) {
	created := &models.ForumPost{}
	if err := c.do(ctx, "create post", http.MethodPost, "/api/posts", "", post, created); err != nil {
		return nil, err
	}
	return created, nil
}

// FlagPost asks the backend to flag a post for moderation
func (c *Client) FlagPost(ctx context.Context, postID int64, token string) error {
	return c.do(ctx, "flag post", http.MethodPost, fmt.Sprintf("/api/moderation/%d", postID), token, nil, nil)
}
