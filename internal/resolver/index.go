package resolver

import (
	"strings"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Index answers video lookups by URL. It is built once per dataset load and
// is read-only afterwards, so it is safe for concurrent use.
type Index struct {
	exact     map[string]*model.VideoRecord
	canonical map[string]*model.VideoRecord
	stripped  []strippedURL
	n         int
}

type strippedURL struct {
	url   string
	video *model.VideoRecord
}

// NewIndex indexes videos by exact URL, by canonical platform id and by URL
// without query string. When several videos share a key the first one in
// videos wins. The index keeps pointers into videos.
func NewIndex(videos []model.VideoRecord) *Index {
	idx := &Index{
		exact:     make(map[string]*model.VideoRecord, len(videos)),
		canonical: make(map[string]*model.VideoRecord, len(videos)),
		stripped:  make([]strippedURL, 0, len(videos)),
	}

	for i := range videos {
		v := &videos[i]
		u := v.Link()
		if u == "" {
			continue
		}
		idx.n++
		if _, ok := idx.exact[u]; !ok {
			idx.exact[u] = v
		}
		s := stripQuery(u)
		if p, id, ok := CanonicalID(u); ok {
			key := string(p) + ":" + id
			if _, ok := idx.canonical[key]; !ok {
				idx.canonical[key] = v
			}
			// Ids carried in the query string (watch?v=) leave nothing to
			// compare once stripped.
			if !strings.Contains(s, id) {
				continue
			}
		}
		if s != "" {
			idx.stripped = append(idx.stripped, strippedURL{url: s, video: v})
		}
	}
	return idx
}

// Len returns the number of videos with a URL.
func (idx *Index) Len() int {
	return idx.n
}

// Lookup finds the video rawURL refers to. It tries, in order, an exact URL
// match, a canonical platform-id match and finally substring containment
// between the query-stripped URLs. Containment only applies to URLs without a
// content id. It returns nil when nothing matches.
func (idx *Index) Lookup(rawURL string) *model.VideoRecord {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return nil
	}

	if v, ok := idx.exact[u]; ok {
		return v
	}

	// A content id that is not indexed names some other video, so it never
	// falls back to containment.
	if key := CanonicalKey(u); key != "" {
		return idx.canonical[key]
	}

	q := stripQuery(u)
	if q == "" {
		return nil
	}
	for _, s := range idx.stripped {
		if strings.Contains(s.url, q) || strings.Contains(q, s.url) {
			return s.video
		}
	}
	return nil
}

func stripQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return strings.TrimSpace(u)
}
