package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
)

// Feedback dispatches the feedback subcommands:
//
//	feedback add <news-id>                  — submit feedback on a record
//	feedback edit <feedback-id> <news-id>   — change own feedback
//	feedback delete <feedback-id> <news-id> — remove own feedback
//	feedback mine [page]                    — list own feedback
func (a *App) Feedback(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			printlnFn("Usage: feedback add <news-id>")
			return nil
		}
		return a.feedbackAdd(ctx, args[1])

	case "edit":
		if len(args) < 3 {
			printlnFn("Usage: feedback edit <feedback-id> <news-id>")
			return nil
		}
		return a.feedbackEdit(ctx, args[1], args[2])

	case "delete":
		if len(args) < 3 {
			printlnFn("Usage: feedback delete <feedback-id> <news-id>")
			return nil
		}
		return a.feedbackDelete(ctx, args[1], args[2])

	case "mine":
		return a.feedbackMine(ctx, args[1:])

	default:
		printlnFn("Usage: feedback <add|edit|delete|mine> ...")
		return nil
	}
}

func (a *App) feedbackAdd(ctx context.Context, rawID string) error {
	recordID, err := parseID(rawID)
	if err != nil {
		printlnFn("Usage: feedback add <news-id>")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Do you agree with the analysis? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	agrees := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")

	comment, err := getSimpleText(a.reader, "Comment (optional)", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.feedback.Submit(ctx, recordID, agrees, comment); err != nil {
		printlnFn("Failed to submit feedback:", errText(err))
		return err
	}

	printlnFn("Feedback submitted.")
	return nil
}

func (a *App) feedbackEdit(ctx context.Context, rawFeedbackID, rawRecordID string) error {
	feedbackID, err := parseID(rawFeedbackID)
	if err != nil {
		printlnFn("Usage: feedback edit <feedback-id> <news-id>")
		return nil
	}
	recordID, err := parseID(rawRecordID)
	if err != nil {
		printlnFn("Usage: feedback edit <feedback-id> <news-id>")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Do you agree with the analysis? (y/n, empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	comment, err := getSimpleText(a.reader, "New comment (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var upd api.FeedbackUpdate
	if answer != "" {
		agrees := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
		upd.AgreesWithAnalysis = &agrees
	}
	if comment != "" {
		upd.Comment = &comment
	}
	if upd.AgreesWithAnalysis == nil && upd.Comment == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	if _, err := a.feedback.Update(ctx, feedbackID, recordID, upd); err != nil {
		printlnFn("Failed to update feedback:", errText(err))
		return err
	}

	printlnFn("Feedback updated.")
	return nil
}

func (a *App) feedbackDelete(ctx context.Context, rawFeedbackID, rawRecordID string) error {
	feedbackID, err := parseID(rawFeedbackID)
	if err != nil {
		printlnFn("Usage: feedback delete <feedback-id> <news-id>")
		return nil
	}
	recordID, err := parseID(rawRecordID)
	if err != nil {
		printlnFn("Usage: feedback delete <feedback-id> <news-id>")
		return nil
	}

	if err := a.feedback.Delete(ctx, feedbackID, recordID); err != nil {
		printlnFn("Failed to delete feedback:", errText(err))
		return err
	}

	printlnFn("Feedback deleted.")
	return nil
}

func (a *App) feedbackMine(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 {
			printlnFn("Usage: feedback mine [page]")
			return nil
		}
		page = p
	}

	result, err := a.feedback.Mine(ctx, page, historyPageSize)
	if err != nil {
		printlnFn("Failed to load feedback:", errText(err))
		return err
	}

	if len(result.Items) == 0 {
		printlnFn("No feedback yet.")
		return nil
	}

	for i := range result.Items {
		entry := &result.Items[i]
		verdict := "disagreed"
		if entry.AgreesWithAnalysis {
			verdict = "agreed"
		}
		line := fmt.Sprintf("  [%d] %s", entry.ID, verdict)
		if entry.Record != nil {
			line += fmt.Sprintf(" with #%d (%s) %s", entry.Record.ID, entry.Record.Result, shorten(entry.Record.Content, 40))
		}
		if entry.Comment != "" {
			line += ": " + entry.Comment
		}
		printlnFn(line)
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d entries total)", result.CurrentPage, result.Pages, result.Total))
	return nil
}
