package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Jeanads/trendx-analytics/internal/model"
	"github.com/Jeanads/trendx-analytics/pkg/numfmt"
)

// Table names of the dashboard dataset.
const (
	UsersTable  = "cached_stats"
	VideosTable = "valid_videos"
)

// ErrMissingColumn is returned when a table lacks a column the loader cannot
// do without.
var ErrMissingColumn = errors.New("required column missing")

// Source loads the raw dataset. Implementations only read.
type Source interface {
	// LoadUsers returns every user with a non-empty display name, in
	// descending order of total views.
	LoadUsers(ctx context.Context) ([]model.UserAggregate, error)
	// LoadVideos returns every video, newest id first. A dataset without a
	// video table yields an empty slice.
	LoadVideos(ctx context.Context) ([]model.VideoRecord, error)
	Ping(ctx context.Context) error
	Name() string
	Close()
}

// rowScanner is satisfied by both pgx.Rows and *sql.Rows.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

var userCounters = []string{
	"total_videos", "total_views", "total_likes", "total_comments", "total_shares",
	"tiktok_views", "tiktok_videos",
	"youtube_views", "youtube_videos",
	"instagram_views", "instagram_videos",
}

var videoCounters = []string{"views", "likes", "comments", "shares"}

// handleColumn returns the optional per-platform username column.
func handleColumn(p model.Platform) string {
	return string(p) + "_username"
}

// textCol selects column as text, or NULL when the table does not have it.
// Missing counters then coerce to 0 like any other unreadable value.
func textCol(alias string, cols map[string]bool, name string) string {
	if !cols[name] {
		return "CAST(NULL AS TEXT)"
	}
	if alias != "" {
		name = alias + "." + name
	}
	return "CAST(" + name + " AS TEXT)"
}

// usersQuery builds the user select for a table with the given columns.
// prefix qualifies table names (e.g. the attached catalog).
func usersQuery(prefix string, cols map[string]bool) (string, error) {
	if !cols["discord_username"] {
		return "", fmt.Errorf("%s.discord_username: %w", UsersTable, ErrMissingColumn)
	}

	sel := []string{
		textCol("", cols, "user_id"),
		textCol("", cols, "discord_username"),
	}
	for _, c := range userCounters {
		sel = append(sel, textCol("", cols, c))
	}
	sel = append(sel, textCol("", cols, "updated_at"))
	for _, p := range model.Platforms {
		sel = append(sel, textCol("", cols, handleColumn(p)))
	}

	return fmt.Sprintf(`
		SELECT %s
		FROM %s%s
		WHERE discord_username IS NOT NULL
		  AND CAST(discord_username AS TEXT) <> ''`,
		strings.Join(sel, ",\n\t\t       "), prefix, UsersTable), nil
}

// videosQuery builds the video select. Owners come from a left join, so a
// video without a known user keeps a NULL owner.
func videosQuery(prefix string, cols map[string]bool) (string, error) {
	if !cols["id"] {
		return "", fmt.Errorf("%s.id: %w", VideosTable, ErrMissingColumn)
	}

	sel := []string{
		textCol("v", cols, "id"),
		"CAST(cs.discord_username AS TEXT)",
		textCol("v", cols, "url"),
		textCol("v", cols, "platform"),
	}
	for _, c := range videoCounters {
		sel = append(sel, textCol("v", cols, c))
	}

	join := "LEFT JOIN " + prefix + UsersTable + " cs ON CAST(v.user_id AS TEXT) = CAST(cs.user_id AS TEXT)"
	if !cols["user_id"] {
		join = "LEFT JOIN (SELECT NULL AS discord_username) cs ON FALSE"
	}

	return fmt.Sprintf(`
		SELECT %s
		FROM %s%s v
		%s`,
		strings.Join(sel, ",\n\t\t       "), prefix, VideosTable, join), nil
}

func scanUsers(rows rowScanner) ([]model.UserAggregate, error) {
	var users []model.UserAggregate

	const fixed = 2 + 11 + 1
	for rows.Next() {
		dest := make([]sql.NullString, fixed+len(model.Platforms))
		ptrs := make([]any, len(dest))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, decodeUser(dest))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TotalViews > users[j].TotalViews
	})
	return users, nil
}

// decodeUser maps one text row in usersQuery column order. Unreadable
// counters become 0.
func decodeUser(c []sql.NullString) model.UserAggregate {
	n := func(i int) int64 { return counter(c[i]) }

	u := model.UserAggregate{
		UserID:        strings.TrimSpace(c[0].String),
		DisplayName:   strings.TrimSpace(c[1].String),
		TotalVideos:   n(2),
		TotalViews:    n(3),
		TotalLikes:    n(4),
		TotalComments: n(5),
		TotalShares:   n(6),
		TikTok:        model.PlatformStats{Views: n(7), Videos: n(8)},
		YouTube:       model.PlatformStats{Views: n(9), Videos: n(10)},
		Instagram:     model.PlatformStats{Views: n(11), Videos: n(12)},
		UpdatedAt:     parseTime(c[13].String),
	}

	for i, p := range model.Platforms {
		if h := strings.TrimSpace(c[14+i].String); c[14+i].Valid && h != "" {
			if u.Handles == nil {
				u.Handles = make(map[model.Platform]string, len(model.Platforms))
			}
			u.Handles[p] = h
		}
	}
	return u
}

func scanVideos(rows rowScanner) ([]model.VideoRecord, error) {
	var videos []model.VideoRecord

	for rows.Next() {
		var dest [4 + 4]sql.NullString
		ptrs := make([]any, len(dest))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, decodeVideo(dest[:]))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].ID > videos[j].ID
	})
	return videos, nil
}

func decodeVideo(c []sql.NullString) model.VideoRecord {
	return model.VideoRecord{
		ID:       counter(c[0]),
		Owner:    optional(c[1]),
		URL:      optional(c[2]),
		Platform: strings.TrimSpace(c[3].String),
		Views:    counter(c[4]),
		Likes:    counter(c[5]),
		Comments: counter(c[6]),
		Shares:   counter(c[7]),
	}
}

func counter(s sql.NullString) int64 {
	if !s.Valid {
		return 0
	}
	return numfmt.Parse(s.String).Int64()
}

func optional(s sql.NullString) *string {
	v := strings.TrimSpace(s.String)
	if !s.Valid || v == "" {
		return nil
	}
	return &v
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// parseTime accepts the timestamp shapes SQLite and Postgres produce as text.
// Unparsable values yield the zero time.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
