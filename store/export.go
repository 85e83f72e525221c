package store

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var postsCSVHeader = []string{"Origin", "ID", "Title", "Content", "Category", "Author", "Timestamp", "IsAdviceSeeker", "School", "Tags"}

// ExportPostsCSV writes the merged forum posts matching filter as CSV
func (s *Store) ExportPostsCSV(w io.Writer, filter PostFilter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(postsCSVHeader); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	for _, p := range s.MergedPosts(filter) {
		row := []string{
			string(p.Origin),
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Content,
			p.Category,
			p.Author,
			p.Timestamp,
			strconv.FormatBool(p.IsAdviceSeeker),
			p.School,
			strings.Join(p.Tags, "; "),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "failed to write post %s", p.Key)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}
