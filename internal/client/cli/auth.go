package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and creates a new
// account. Registration logs the user in directly: the tokens returned by
// the server are adopted without a second login round trip.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Choose a password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Register(ctx, userName, email, string(password))
	if err != nil {
		printlnFn("Registration failed:", errText(err))
		return err
	}

	printlnFn("Welcome,", user.Username+"!")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// On failure the session stays anonymous and the reason is shown.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, userName, string(password))
	if err != nil {
		printlnFn("Login failed:", errText(err))
		return err
	}

	printlnFn("Logged in as", user.Username)
	return nil
}

// Logout invalidates the refresh token on the server on a best-effort basis
// and always clears the local session.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current account details.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn("Username:", u.Username)
	printlnFn("Email:   ", u.Email)
	if u.IsAdmin {
		printlnFn("Role:     administrator")
	}
	if u.LastLogin != "" {
		printlnFn("Last login:", u.LastLogin)
	}
	return nil
}

// Profile interactively updates the account email and/or password. Empty
// answers keep the current values; a password change requires the current
// password. A rejected update leaves the session untouched.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "New email (leave empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "New password (leave empty to keep)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var upd api.ProfileUpdate
	if email != "" {
		upd.Email = &email
	}
	if len(password) > 0 {
		current, err := getPassword(os.Stdout, "Current password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(current)

		newPw := string(password)
		curPw := string(current)
		upd.Password = &newPw
		upd.CurrentPassword = &curPw
	}

	if upd.Email == nil && upd.Password == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	if _, err := a.session.UpdateProfile(ctx, upd); err != nil {
		printlnFn("Profile update failed:", errText(err))
		return err
	}

	printlnFn("Profile updated.")
	return nil
}
