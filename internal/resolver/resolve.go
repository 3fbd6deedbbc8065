package resolver

import (
	"strings"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Resolver links URLs to known videos and users of one dataset snapshot.
type Resolver struct {
	index *Index
	dir   *Directory
}

// New builds a Resolver over users and videos. Both slices must not be
// modified while the Resolver is in use.
func New(users []model.UserAggregate, videos []model.VideoRecord) *Resolver {
	return &Resolver{
		index: NewIndex(videos),
		dir:   NewDirectory(users),
	}
}

// Index returns the video index.
func (r *Resolver) Index() *Index {
	return r.index
}

// Directory returns the user directory.
func (r *Resolver) Directory() *Directory {
	return r.dir
}

// Resolve classifies rawURL and tries to find its video and owner. Nothing
// found is reported through nil fields; the status is success whenever the
// platform was recognized.
func (r *Resolver) Resolve(rawURL string) model.LinkResolution {
	u := strings.TrimSpace(rawURL)
	res := model.LinkResolution{URL: u, Status: model.ResolutionFailure}
	if u == "" {
		return res
	}

	res.Platform, res.Identifier = Detect(u)
	res.Video = r.index.Lookup(u)
	res.Owner = r.dir.Owner(res.Platform, res.Identifier, res.Video)

	if res.Platform != model.PlatformNone {
		res.Status = model.ResolutionSuccess
	}
	return res
}
