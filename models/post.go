package models

import "strings"

// Category is the kind of bullying a forum post is about
type Category string

// Forum categories
const (
	CategoryPhysical Category = "physical"
	CategoryVerbal   Category = "verbal"
	CategoryCyber    Category = "cyber"
)

// AnonymousAuthor is the author of every post created from the console
const AnonymousAuthor = "Anonymous"

var categoryNames = map[Category]string{
	CategoryPhysical: "Physical Bullying",
	CategoryVerbal:   "Verbal Bullying",
	CategoryCyber:    "Cyberbullying",
}

// DisplayName returns the label shown on the forum for c
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// MatchesCategory reports whether a post category (raw or display name) matches filter
func MatchesCategory(postCategory, filter string) bool {
	if strings.EqualFold(postCategory, filter) {
		return true
	}
	return strings.EqualFold(postCategory, Category(strings.ToLower(filter)).DisplayName())
}

// ForumPost holds the structure of a forum post
type ForumPost struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Category       string   `json:"category"`
	Author         string   `json:"author"`
	Timestamp      string   `json:"timestamp"`
	Tags           []string `json:"tags"`
	Flagged        bool     `json:"flagged,omitempty"`
	IsAdviceSeeker bool     `json:"isAdviceSeeker,omitempty"`
	School         string   `json:"school,omitempty"`
	RemoteID       int64    `json:"remoteId,omitempty"`
}

// PostInput is what a student fills in to start a forum thread
type PostInput struct {
	Title          string   `json:"title" validate:"required,notblank"`
	Content        string   `json:"content" validate:"required,notblank"`
	Category       Category `json:"category" validate:"required,oneof=physical verbal cyber"`
	IsAdviceSeeker bool     `json:"isAdviceSeeker"`
	School         string   `json:"school"`
}

// Tags derives the post tags the same way the forum does
func (in PostInput) Tags() []string {
	tags := make([]string, 0, 3)
	if in.IsAdviceSeeker {
		tags = append(tags, "advice-needed")
	}
	tags = append(tags, string(in.Category))
	if in.School != "" {
		tags = append(tags, "school")
	}
	return tags
}

// CreatePost is the body of POST /api/posts
type CreatePost struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	IsAnonymous bool     `json:"isAnonymous"`
}

// NewCreatePost builds the backend payload for in
func NewCreatePost(in PostInput) CreatePost {
	return CreatePost{
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category.DisplayName(),
		Type:        string(in.Category),
		Tags:        in.Tags(),
		IsAnonymous: true,
	}
}
