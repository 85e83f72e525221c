package models

import (
	"fmt"
	"strconv"
)

// Origin tells where a record in the merged view came from
type Origin string

// Record origins
const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// ParseOrigin validates an origin path segment
func ParseOrigin(s string) (Origin, error) {
	switch Origin(s) {
	case OriginLocal, OriginRemote:
		return Origin(s), nil
	}
	return "", fmt.Errorf("unknown origin %q", s)
}

// Key is the identity of a record in the merged view. Local and remote ids are assigned
// independently, so the id alone is not unique.
type Key struct {
	Origin Origin `json:"origin"`
	ID     int64  `json:"id"`
}

// ParseKey builds a Key from the origin and id path segments
func ParseKey(origin, id string) (Key, error) {
	o, err := ParseOrigin(origin)
	if err != nil {
		return Key{}, err
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("invalid id %q", id)
	}
	return Key{Origin: o, ID: n}, nil
}

func (k Key) String() string {
	return string(k.Origin) + ":" + strconv.FormatInt(k.ID, 10)
}

// ReportRecord is a report in the merged view
type ReportRecord struct {
	Key    string `json:"key"`
	Origin Origin `json:"origin"`
	Report
}

// PostRecord is a forum post in the merged view
type PostRecord struct {
	Key    string `json:"key"`
	Origin Origin `json:"origin"`
	ForumPost
}

// NewReportRecord wraps r with its origin
func NewReportRecord(origin Origin, r Report) ReportRecord {
	return ReportRecord{Key: Key{Origin: origin, ID: r.ID}.String(), Origin: origin, Report: r}
}

// NewPostRecord wraps p with its origin
func NewPostRecord(origin Origin, p ForumPost) PostRecord {
	return PostRecord{Key: Key{Origin: origin, ID: p.ID}.String(), Origin: origin, ForumPost: p}
}
