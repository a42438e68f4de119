package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/hoverboard/internal/common"
)

// getSimpleText and getPassword are swapped out in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register creates an account and signs straight into it. The new account
// has no username yet.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fullName, err := getSimpleText(a.reader, "Enter full name (optional)", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Register(ctx, email, password, fullName)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.setSession(s)
	fmt.Fprintln(a.out, "Success! Pick a username with: username <name>")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.setSession(s)
	log.Printf("Login successful")
	if s.NeedsUsername() {
		fmt.Fprintln(a.out, "Pick a username with: username <name>")
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	a.setSession(nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
