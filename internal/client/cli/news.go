package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// getMultiline is an indirection used to facilitate testing.
var getMultiline = GetMultiline

// Verify submits a claim or URL for analysis and prints the verdict.
func (a *App) Verify(ctx context.Context) error {
	content, err := getMultiline(a.reader, "Enter the claim text or URL to verify", os.Stdout)
	if err != nil {
		return err
	}
	if content == "" {
		printlnFn("Nothing to verify.")
		return nil
	}

	rec, err := a.news.Verify(ctx, content)
	if err != nil {
		printlnFn("Verification failed:", errText(err))
		return err
	}

	printRecord(rec)
	return nil
}

// History prints one page of the verification history. With the server
// unreachable the page is served from the local record cache instead.
func (a *App) History(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 {
			printlnFn("Usage: history [page]")
			return nil
		}
		page = p
	}

	result, offline, err := a.news.History(ctx, page, historyPageSize)
	if err != nil {
		printlnFn("Failed to load history:", errText(err))
		return err
	}

	if offline {
		printlnFn("Server unreachable, showing locally cached records.")
	}
	if len(result.Items) == 0 {
		printlnFn("No records.")
		return nil
	}

	for i := range result.Items {
		printRecordLine(&result.Items[i])
	}
	if !offline {
		printlnFn(fmt.Sprintf("Page %d of %d (%d records total)", result.CurrentPage, result.Pages, result.Total))
	}
	return nil
}

// Show prints a single verification record together with its feedback.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		printlnFn("Usage: show <id>")
		return nil
	}

	rec, err := a.news.Details(ctx, id)
	if err != nil {
		printlnFn("Failed to load record:", errText(err))
		return err
	}
	printRecord(rec)

	entries, err := a.feedback.ForRecord(ctx, id)
	if err != nil {
		printlnFn("Failed to load feedback:", errText(err))
		return err
	}

	if len(entries) == 0 {
		printlnFn("No feedback yet.")
		return nil
	}
	printlnFn("Feedback:")
	for i := range entries {
		printFeedbackEntry(&entries[i])
	}
	return nil
}
