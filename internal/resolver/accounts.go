package resolver

import (
	"sort"
	"strings"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// minHandleLength is the shortest extracted username kept as an account.
const minHandleLength = 3

// minNamePart is the shortest display-name fragment used for similarity search.
const minNamePart = 4

type detectedLink struct {
	lowerURL string
	platform model.Platform
	id       model.Identifier
}

// accountSet collects account names per platform without duplicates.
type accountSet map[model.Platform]map[string]struct{}

func (s accountSet) add(p model.Platform, name string) {
	if p == model.PlatformNone || name == "" {
		return
	}
	if s[p] == nil {
		s[p] = make(map[string]struct{})
	}
	s[p][name] = struct{}{}
}

func (s accountSet) empty() bool {
	for _, names := range s {
		if len(names) > 0 {
			return false
		}
	}
	return true
}

// addLink records what one detected link says about its account. Only real
// usernames become handles; opaque ids and generic detections mark the
// platform as active.
func (s accountSet) addLink(l detectedLink) {
	switch {
	case l.platform == model.PlatformNone:
		return
	case l.id.Kind == model.KindUsername:
		if len(l.id.Value) >= minHandleLength {
			s.add(l.platform, l.id.Value)
		}
	default:
		s.add(l.platform, model.ActivityMarker)
	}
}

// Accounts builds the per-user account report over the whole dataset.
//
// Each user's own video links are scanned first. Users whose links yield
// nothing fall back to scanning every link for their display name. Finally,
// platforms where the aggregate counters show videos but no account was
// found receive a placeholder handle derived from the display name. The
// result is ordered by active platforms, then total views, both descending.
func Accounts(users []model.UserAggregate, videos []model.VideoRecord) []model.AccountReport {
	links := make([]detectedLink, len(videos))
	byOwner := make(map[string][]int)
	for i := range videos {
		u := strings.TrimSpace(videos[i].Link())
		if u != "" {
			p, id := Detect(u)
			links[i] = detectedLink{lowerURL: strings.ToLower(u), platform: p, id: id}
		}
		if videos[i].Owner != nil {
			byOwner[*videos[i].Owner] = append(byOwner[*videos[i].Owner], i)
		}
	}

	reports := make([]model.AccountReport, 0, len(users))
	for i := range users {
		reports = append(reports, accountReport(&users[i], byOwner[users[i].DisplayName], links))
	}

	sort.SliceStable(reports, func(a, b int) bool {
		if reports[a].PlatformsActive != reports[b].PlatformsActive {
			return reports[a].PlatformsActive > reports[b].PlatformsActive
		}
		return reports[a].TotalViews > reports[b].TotalViews
	})
	return reports
}

func accountReport(u *model.UserAggregate, own []int, links []detectedLink) model.AccountReport {
	set := make(accountSet)

	valid := 0
	for _, i := range own {
		if links[i].lowerURL == "" {
			continue
		}
		valid++
		set.addLink(links[i])
	}

	if set.empty() {
		if needles := nameNeedles(u.DisplayName); len(needles) > 0 {
			for _, l := range links {
				if l.lowerURL != "" && containsAny(l.lowerURL, needles) {
					set.addLink(l)
				}
			}
		}
	}

	r := model.AccountReport{
		DisplayName:   u.DisplayName,
		TotalVideos:   u.TotalVideos,
		TotalViews:    u.TotalViews,
		Accounts:      make(map[model.Platform][]string, len(model.Platforms)),
		Stats:         make(map[model.Platform]model.PlatformStats, len(model.Platforms)),
		VideosScanned: len(own),
		ValidURLs:     valid,
	}

	placeholder := "@" + strings.ToLower(strings.SplitN(u.DisplayName, "#", 2)[0])
	for _, p := range model.Platforms {
		stats := u.Stats(p)
		r.Stats[p] = stats
		names := sortedNames(set[p])

		if stats.Videos > 0 {
			r.PlatformsWithVideos++
			if len(names) > 0 {
				r.PlatformsActive++
			} else {
				names = []string{placeholder}
				r.Synthesized = append(r.Synthesized, p)
			}
		}
		r.Accounts[p] = names
	}

	r.Status = accountStatus(r.PlatformsActive, r.PlatformsWithVideos)
	return r
}

func accountStatus(active, withVideos int) string {
	switch {
	case withVideos == 0:
		return model.AccountsInactive
	case active == withVideos && withVideos >= 2:
		return model.AccountsComplete
	case active > 0:
		return model.AccountsPartial
	default:
		return model.AccountsNone
	}
}

// nameNeedles returns the normalized display name and its underscore-separated
// parts long enough to be meaningful in a URL.
func nameNeedles(displayName string) []string {
	name := strings.ToLower(displayName)
	name = strings.ReplaceAll(name, "#", "")
	name = strings.ReplaceAll(name, " ", "")
	if name == "" {
		return nil
	}

	needles := []string{name}
	for _, part := range strings.Split(name, "_") {
		if len(part) >= minNamePart && part != name {
			needles = append(needles, part)
		}
	}
	return needles
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func sortedNames(names map[string]struct{}) []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
