// Package report renders leaderboards and player histories as text tables and CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

const dateLayout = "2006-01-02 15:04"

// RankLabel returns the podium label for the top three and the plain number otherwise.
func RankLabel(rank int) string {
	switch rank {
	case 1:
		return "[1st]"
	case 2:
		return "[2nd]"
	case 3:
		return "[3rd]"
	default:
		return strconv.Itoa(rank)
	}
}

// FormatPercentage renders a percentage with at most two decimals.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// WriteLeaderboard prints entries as an aligned table.
func WriteLeaderboard(w io.Writer, entries []domain.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No scores recorded yet. Be the first to play!")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tName\tScore\tPercentage\tDate")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\n",
			RankLabel(e.Rank), e.PlayerName, e.Score, e.Total, FormatPercentage(e.Percentage), formatDate(e.PlayedAt))
	}
	return tw.Flush()
}

// WriteHistory prints a player's history followed by summary statistics.
func WriteHistory(w io.Writer, rep app.HistoryReport) error {
	if len(rep.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No quiz history found. Play your first quiz!")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Quiz #\tScore\tPercentage\tDate")
	for i, e := range rep.Entries {
		fmt.Fprintf(tw, "%d\t%d/%d\t%s\t%s\n", i+1, e.Score, e.Total, FormatPercentage(e.Percentage), formatDate(e.PlayedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	best := rep.Stats.Best
	_, err := fmt.Fprintf(w, "\nStatistics:\nTotal Quizzes: %d\nAverage Score: %.1f%%\nBest Performance: %d/%d (%s)\n",
		rep.Stats.Quizzes, rep.Stats.AveragePercentage, best.Score, best.Total, FormatPercentage(best.Percentage))
	return err
}

// WriteLeaderboardCSV exports entries with a header row.
func WriteLeaderboardCSV(w io.Writer, entries []domain.LeaderboardEntry) error {
	records := make([][]string, len(entries)+1)
	records[0] = []string{
		"Rank",
		"Player",
		"Score",
		"Total",
		"Percentage",
		"PlayedAt",
	}
	for i, e := range entries {
		records[i+1] = []string{
			strconv.Itoa(e.Rank),
			e.PlayerName,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Total),
			strconv.FormatFloat(e.Percentage, 'f', 2, 64),
			e.PlayedAt.UTC().Format(time.RFC3339),
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}
