package core

import (
	"sort"
	"strings"

	"github.com/huangsam/devpulse/schema"
)

// Productivity score weights. The score only ranks authors for display;
// it is not used by any downstream calculation.
const (
	wCommits = 0.3
	wChurn   = 0.4
	wFiles   = 0.3

	churnUnit = 100.0 // Lines of churn per productivity point
	filesUnit = 10.0  // Files changed per productivity point
)

// AggregateChurn reduces a list of commits into team-wide churn statistics
// and one AuthorChurnStats per author. An empty input yields an
// empty-but-well-formed output, not an error.
func AggregateChurn(commits []schema.CommitRecord) (schema.ChurnSummary, []schema.AuthorChurnStats) {
	summary := schema.ChurnSummary{TotalCommits: len(commits)}

	churns := make([]float64, 0, len(commits))
	perAuthor := make(map[string]*schema.AuthorChurnStats)
	activeDays := make(map[string]map[string]struct{})

	for i := range commits {
		c := &commits[i]
		summary.TotalAdditions += c.Additions
		summary.TotalDeletions += c.Deletions
		churns = append(churns, float64(c.Churn()))
		tagMessage(&summary.Tags, c.Message)

		stats, ok := perAuthor[c.Author]
		if !ok {
			stats = &schema.AuthorChurnStats{Author: c.Author}
			perAuthor[c.Author] = stats
			activeDays[c.Author] = make(map[string]struct{})
		}
		stats.Commits++
		stats.Additions += c.Additions
		stats.Deletions += c.Deletions
		stats.FilesChanged += c.FilesChanged
		activeDays[c.Author][c.Timestamp.UTC().Format("2006-01-02")] = struct{}{}
	}

	summary.NetChange = summary.TotalAdditions - summary.TotalDeletions
	summary.TotalChurn = summary.TotalAdditions + summary.TotalDeletions
	summary.AvgChurn = mean(churns)
	summary.MedianChurn = median(churns)
	summary.ChurnStdDev = sampleStdDev(churns)

	authors := make([]schema.AuthorChurnStats, 0, len(perAuthor))
	for name, stats := range perAuthor {
		// Floor the denominator to 1 so a deletion-only author
		// still gets a finite ratio.
		stats.ChurnRatio = float64(stats.Deletions) / float64(max(stats.Additions, 1))
		stats.AvgChurn = float64(stats.TotalChurn()) / float64(max(stats.Commits, 1))
		stats.ActiveDays = len(activeDays[name])
		stats.Productivity = productivityScore(stats)
		authors = append(authors, *stats)
	}

	return summary, RankAuthors(authors)
}

// productivityScore blends commit count, churn volume and file reach into a
// single ranking value.
func productivityScore(a *schema.AuthorChurnStats) float64 {
	return wCommits*float64(a.Commits) +
		wChurn*(float64(a.TotalChurn())/churnUnit) +
		wFiles*(float64(a.FilesChanged)/filesUnit)
}

// RankAuthors sorts authors by productivity score in descending order.
// Ties break on author name so output ordering stays deterministic.
func RankAuthors(authors []schema.AuthorChurnStats) []schema.AuthorChurnStats {
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Productivity != authors[j].Productivity {
			return authors[i].Productivity > authors[j].Productivity
		}
		return authors[i].Author < authors[j].Author
	})
	return authors
}

// tagMessage counts conventional keywords in a commit message subject.
func tagMessage(tags *schema.MessageTags, message string) {
	msg := strings.ToLower(message)
	if strings.Contains(msg, "fix") {
		tags.Fix++
	}
	if strings.Contains(msg, "feat") || strings.Contains(msg, "feature") {
		tags.Feat++
	}
	if strings.Contains(msg, "refactor") {
		tags.Refactor++
	}
}
