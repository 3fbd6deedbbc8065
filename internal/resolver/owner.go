package resolver

import (
	"strings"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Directory looks users up by display name, platform handle or id.
type Directory struct {
	users  []model.UserAggregate
	byName map[string]*model.UserAggregate
}

// NewDirectory indexes users by display name. Display names are unique; if
// one repeats, the first row wins. The directory keeps pointers into users.
func NewDirectory(users []model.UserAggregate) *Directory {
	d := &Directory{
		users:  users,
		byName: make(map[string]*model.UserAggregate, len(users)),
	}
	for i := range users {
		if _, ok := d.byName[users[i].DisplayName]; !ok {
			d.byName[users[i].DisplayName] = &users[i]
		}
	}
	return d
}

// ByName returns the user with exactly the given display name.
func (d *Directory) ByName(name string) (*model.UserAggregate, bool) {
	u, ok := d.byName[name]
	return u, ok
}

// Owner resolves who owns the content behind a URL.
//
// The owner of a matched video always wins. Otherwise an identifier that
// names an account is matched, case-insensitively and as a substring, first
// against the platform handles and then against display names and user ids.
// Opaque content ids are never matched against names. It returns nil when
// no user matches.
func (d *Directory) Owner(p model.Platform, id model.Identifier, video *model.VideoRecord) *model.UserAggregate {
	if video != nil && video.Owner != nil {
		if u, ok := d.byName[*video.Owner]; ok {
			return u
		}
	}

	if p == model.PlatformNone || !id.Kind.NamesAccount() || id.Value == "" {
		return nil
	}
	needle := strings.ToLower(id.Value)

	for i := range d.users {
		if h := d.users[i].Handles[p]; h != "" && strings.Contains(strings.ToLower(h), needle) {
			return &d.users[i]
		}
	}
	for i := range d.users {
		if strings.Contains(strings.ToLower(d.users[i].DisplayName), needle) {
			return &d.users[i]
		}
	}
	for i := range d.users {
		if strings.Contains(strings.ToLower(d.users[i].UserID), needle) {
			return &d.users[i]
		}
	}
	return nil
}
