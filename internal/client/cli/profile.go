package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

var errUsage = errors.New("usage")

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Please login first")
	return false
}

func (a *App) SelectUsername(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return errUsage
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: username <name>")
		return errUsage
	}

	s, err := a.authService.ClaimUsername(ctx, args[0])
	if err != nil {
		log.Printf("Could not set username: %s", err.Error())
		return err
	}

	a.setSession(s)
	fmt.Fprintf(a.out, "Username set to %s\n", s.Username)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if !a.requireLogin() {
		return errUsage
	}

	p, err := a.profileService.Me(ctx)
	if err != nil {
		log.Printf("Could not load profile: %s", err.Error())
		return err
	}

	a.printProfile(p)
	return nil
}

// EditProfile prompts for full name and bio; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.requireLogin() {
		return errUsage
	}

	fullName, err := getSimpleText(a.reader, "Full name (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	bio, err := GetMultiline(a.reader, "Bio (empty keeps current)", a.out)
	if err != nil {
		return err
	}

	var upd models.UserUpdate
	if fullName != "" {
		upd.FullName = &fullName
	}
	if bio != "" {
		upd.Bio = &bio
	}
	if upd.Empty() {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	p, err := a.profileService.Update(ctx, upd)
	if err != nil {
		log.Printf("Could not update profile: %s", err.Error())
		return err
	}

	a.printProfile(p)
	return nil
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return errUsage
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: avatar <path>")
		return errUsage
	}

	p, err := a.profileService.UploadAvatar(ctx, args[0])
	if err != nil {
		log.Printf("Avatar upload failed: %s", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Avatar updated: %s\n", p.AvatarURL)
	return nil
}

func (a *App) printProfile(p *models.UserProfile) {
	username := p.Username
	if username == "" {
		username = "(not set)"
	}
	fmt.Fprintf(a.out, "Email:    %s\n", p.Email)
	fmt.Fprintf(a.out, "Username: %s\n", username)
	fmt.Fprintf(a.out, "Name:     %s\n", p.FullName)
	fmt.Fprintf(a.out, "Bio:      %s\n", p.Bio)
	fmt.Fprintf(a.out, "Avatar:   %s\n", p.AvatarURL)
	fmt.Fprintf(a.out, "Level:    %s (saldo %d)\n", p.Level, p.Saldo)
}
