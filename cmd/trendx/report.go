package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Jeanads/trendx-analytics/internal/model"
	"github.com/Jeanads/trendx-analytics/internal/service"
	"github.com/Jeanads/trendx-analytics/pkg/numfmt"
)

func newRankCmd() *cobra.Command {
	var q service.RankingQuery

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the top creators by views, likes, engagement or score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := q.Validate(); err != nil {
				return err
			}
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			users, err := snap.Rankings(q)
			if err != nil {
				return err
			}
			return printRankings(cmd.OutOrStdout(), q.By, users)
		},
	}

	cmd.Flags().StringVar(&q.By, "by", service.SortScore, "ranking: views, likes, engagement or score")
	cmd.Flags().IntVar(&q.Limit, "limit", service.DefaultRankingLimit, "number of creators to show")

	return cmd
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <url>",
		Short: "Resolve a social media link to its platform, video and owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			res := snap.Resolver().Resolve(args[0])
			return printResolution(cmd.OutOrStdout(), &res)
		},
	}
}

func newAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Print the platform accounts detected for every creator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			return printAccounts(cmd.OutOrStdout(), snap.Accounts())
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), &snap.Summary)
		},
	}
}

func rankOf(u *model.UserAggregate, by string) int {
	switch by {
	case service.SortViews:
		return u.Derived.RankViews
	case service.SortLikes:
		return u.Derived.RankLikes
	case service.SortEngagement:
		return u.Derived.RankEngagement
	default:
		return u.Derived.RankScore
	}
}

func printRankings(w io.Writer, by string, users []model.UserAggregate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCREATOR\tVIEWS\tLIKES\tENGAGEMENT\tSCORE\tCATEGORY")
	for i := range users {
		u := &users[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
			rankOf(u, by),
			u.DisplayName,
			numfmt.CompactInt(u.TotalViews),
			numfmt.CompactInt(u.TotalLikes),
			numfmt.Percent(u.Derived.EngagementRate, 2),
			u.Derived.PerformanceScore,
			u.Derived.Category,
		)
	}
	if len(users) == 0 {
		fmt.Fprintln(tw, "-\tno ranked creators\t\t\t\t\t")
	}
	return tw.Flush()
}

func printResolution(w io.Writer, res *model.LinkResolution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "URL\t%s\n", res.URL)
	fmt.Fprintf(tw, "Status\t%s\n", res.Status)
	fmt.Fprintf(tw, "Platform\t%s\n", res.Platform.Title())
	if !res.Identifier.IsZero() {
		fmt.Fprintf(tw, "Identifier\t%s (%s)\n", res.Identifier.Value, res.Identifier.Kind)
	}
	if res.VideoFound() {
		v := res.Video
		fmt.Fprintf(tw, "Video\t#%d  %s views, %s likes, %s engagement\n",
			v.ID, numfmt.CompactInt(v.Views), numfmt.CompactInt(v.Likes), numfmt.Percent(v.Derived.EngagementRate, 2))
	} else {
		fmt.Fprintln(tw, "Video\tnot found")
	}
	if res.OwnerFound() {
		o := res.Owner
		fmt.Fprintf(tw, "Owner\t%s  %s views, score %.1f (%s)\n",
			o.DisplayName, numfmt.CompactInt(o.TotalViews), o.Derived.PerformanceScore, o.Derived.Category)
	} else {
		fmt.Fprintln(tw, "Owner\tnot found")
	}
	return tw.Flush()
}

func printAccounts(w io.Writer, reports []model.AccountReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATOR\tVIEWS\tTIKTOK\tYOUTUBE\tINSTAGRAM\tSTATUS")
	for i := range reports {
		r := &reports[i]
		cols := make([]string, 0, len(model.Platforms))
		for _, p := range model.Platforms {
			cols = append(cols, accountCell(r, p))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.DisplayName, numfmt.CompactInt(r.TotalViews), strings.Join(cols, "\t"), r.Status)
	}
	return tw.Flush()
}

func accountCell(r *model.AccountReport, p model.Platform) string {
	names := append([]string(nil), r.Accounts[p]...)
	if len(names) == 0 {
		return "-"
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func printSummary(w io.Writer, s *model.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Creators\t%s (%s active, %s inactive)\n",
		numfmt.Grouped(int64(s.TotalUsers)), numfmt.Grouped(int64(s.ActiveUsers)), numfmt.Grouped(int64(s.InactiveUsers)))
	fmt.Fprintf(tw, "Videos\t%s\n", numfmt.CompactInt(s.TotalVideos))
	fmt.Fprintf(tw, "Views\t%s\n", numfmt.CompactInt(s.TotalViews))
	fmt.Fprintf(tw, "Avg engagement\t%s\n", numfmt.Percent(s.AvgEngagement, 2))
	fmt.Fprintf(tw, "Video links\t%s of %s (%s)\n",
		numfmt.Grouped(int64(s.VideosWithLink)), numfmt.Grouped(int64(s.VideoRecords)), numfmt.Percent(s.LinkShare, 1))

	fmt.Fprintln(tw, "\t")
	for _, name := range sortedKeys(s.CategoryCounts) {
		fmt.Fprintf(tw, "Category %s\t%d\n", name, s.CategoryCounts[name])
	}
	for _, name := range sortedKeys(s.StatusCounts) {
		fmt.Fprintf(tw, "Status %s\t%d\n", name, s.StatusCounts[name])
	}
	if s.Fingerprint != "" {
		fmt.Fprintf(tw, "Snapshot\t%.12s\n", s.Fingerprint)
	}
	return tw.Flush()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
