package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

// historyPageSize is how many records one REPL page shows.
const historyPageSize = 10

// errText extracts a user-presentable message from an API error chain.
func errText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable"
	}
	return err.Error()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func printRecordLine(rec *models.VerificationRecord) {
	printlnFn(fmt.Sprintf("#%-5d %-12s %3.0f%%  %s  %s",
		rec.ID, rec.Result, rec.Confidence*100, rec.CreatedAt, shorten(rec.Content, 60)))
}

func printRecord(rec *models.VerificationRecord) {
	printlnFn(fmt.Sprintf("Record #%d", rec.ID))
	printlnFn("  Content:   ", rec.Content)
	printlnFn("  Result:    ", rec.Result)
	printlnFn(fmt.Sprintf("  Confidence: %.0f%%", rec.Confidence*100))
	printlnFn("  Created:   ", rec.CreatedAt)
	if len(rec.Details) > 0 {
		printlnFn("  Details:   ", string(rec.Details))
	}
}

func printFeedbackEntry(entry *models.FeedbackEntry) {
	verdict := "disagrees"
	if entry.AgreesWithAnalysis {
		verdict = "agrees"
	}
	who := "someone"
	if entry.User != nil {
		who = entry.User.Username
	}
	line := fmt.Sprintf("  [%d] %s %s", entry.ID, who, verdict)
	if entry.Comment != "" {
		line += ": " + entry.Comment
	}
	printlnFn(line)
}
