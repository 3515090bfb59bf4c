package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
)

// Admin dispatches the administrator subcommands:
//
//	admin users [page]        — list accounts
//	admin update <user-id>    — activate/deactivate or grant/revoke admin
//	admin analytics [days]    — usage report
//	admin blocked             — list blocked addresses
//	admin unblock <ip>        — lift a block
func (a *App) Admin(ctx context.Context, args []string) error {
	if !a.isAdmin() {
		printlnFn("Administrator access required.")
		return nil
	}

	switch args[0] {
	case "users":
		return a.adminUsers(ctx, args[1:])

	case "update":
		if len(args) < 2 {
			printlnFn("Usage: admin update <user-id>")
			return nil
		}
		return a.adminUpdate(ctx, args[1])

	case "analytics":
		return a.adminAnalytics(ctx, args[1:])

	case "blocked":
		return a.adminBlocked(ctx)

	case "unblock":
		if len(args) < 2 {
			printlnFn("Usage: admin unblock <ip>")
			return nil
		}
		return a.adminUnblock(ctx, args[1])

	default:
		printlnFn("Usage: admin <users|update|analytics|blocked|unblock> ...")
		return nil
	}
}

func (a *App) adminUsers(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 {
			printlnFn("Usage: admin users [page]")
			return nil
		}
		page = p
	}

	result, err := a.admin.Users(ctx, page, historyPageSize)
	if err != nil {
		printlnFn("Failed to load users:", errText(err))
		return err
	}

	for _, u := range result.Items {
		flags := ""
		if u.IsAdmin {
			flags += " admin"
		}
		if !u.IsActive {
			flags += " inactive"
		}
		printlnFn(fmt.Sprintf("  [%d] %s <%s>%s", u.ID, u.Username, u.Email, flags))
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d users total)", result.CurrentPage, result.Pages, result.Total))
	return nil
}

// parseYesNo maps "y"/"yes" to true and "n"/"no" to false; anything else
// (including an empty answer) yields nil, meaning "keep the current value".
func parseYesNo(answer string) *bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		v := true
		return &v
	case "n", "no":
		v := false
		return &v
	default:
		return nil
	}
}

func (a *App) adminUpdate(ctx context.Context, rawID string) error {
	userID, err := parseID(rawID)
	if err != nil {
		printlnFn("Usage: admin update <user-id>")
		return nil
	}

	activeAnswer, err := getSimpleText(a.reader, "Active? (y/n, empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	adminAnswer, err := getSimpleText(a.reader, "Administrator? (y/n, empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	upd := api.AdminUserUpdate{
		IsActive: parseYesNo(activeAnswer),
		IsAdmin:  parseYesNo(adminAnswer),
	}
	if upd.IsActive == nil && upd.IsAdmin == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	user, err := a.admin.UpdateUser(ctx, userID, upd)
	if err != nil {
		printlnFn("Failed to update user:", errText(err))
		return err
	}

	printlnFn(fmt.Sprintf("Updated %s (active=%t, admin=%t)", user.Username, user.IsActive, user.IsAdmin))
	return nil
}

func (a *App) adminAnalytics(ctx context.Context, args []string) error {
	days := 30
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			printlnFn("Usage: admin analytics [days]")
			return nil
		}
		days = d
	}

	report, err := a.admin.Analytics(ctx, days)
	if err != nil {
		printlnFn("Failed to load analytics:", errText(err))
		return err
	}

	printlnFn(fmt.Sprintf("Last %d days:", days))
	printlnFn("  Users:            ", report.TotalUsers)
	printlnFn("  Active users:     ", report.ActiveUsers)
	printlnFn("  Requests:         ", report.TotalRequests)
	printlnFn("  Feedback entries: ", report.TotalFeedback)
	printlnFn("  Reliable:         ", report.ReliableCount)
	printlnFn("  Unreliable:       ", report.UnreliableCount)
	printlnFn(fmt.Sprintf("  Feedback ratio:    %.2f", report.FeedbackRatio))
	if len(report.DailyStats) > 0 {
		printlnFn("  Daily:")
		for _, d := range report.DailyStats {
			printlnFn(fmt.Sprintf("    %s  requests=%d registrations=%d feedback=%d",
				d.Date, d.NewsRequests, d.UserRegistrations, d.FeedbackCount))
		}
	}
	return nil
}

func (a *App) adminBlocked(ctx context.Context) error {
	list, err := a.admin.BlockedIPs(ctx)
	if err != nil {
		printlnFn("Failed to load blocked addresses:", errText(err))
		return err
	}

	if len(list) == 0 {
		printlnFn("No blocked addresses.")
		return nil
	}
	for _, b := range list {
		line := "  " + b.IPAddress
		if b.Reason != "" {
			line += " (" + b.Reason + ")"
		}
		if b.BlockedUntil != "" {
			line += " until " + b.BlockedUntil
		}
		printlnFn(line)
	}
	return nil
}

func (a *App) adminUnblock(ctx context.Context, ip string) error {
	if err := a.admin.UnblockIP(ctx, ip); err != nil {
		printlnFn("Failed to unblock:", errText(err))
		return err
	}
	printlnFn("Unblocked", ip)
	return nil
}
