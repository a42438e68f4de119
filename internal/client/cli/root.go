package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/hoverboard/internal/client/repositories/session"
)

func (a *App) getStatus() string {
	s := ""
	if sess := a.currentSession(); sess != nil {
		name := sess.Username
		if name == "" {
			name = sess.Email
		}
		s = name + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restore picks up the session saved by a previous run, if any.
func (a *App) restore(ctx context.Context) {
	s, err := a.authService.Restore(ctx)
	switch {
	case err == nil:
		a.setSession(s)
		fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(s.Username, s.Email))
		if s.NeedsUsername() {
			fmt.Fprintln(a.out, "Pick a username with: username <name>")
		}
	case errors.Is(err, session.ErrNoSession):
	default:
		log.Printf("Could not restore session: %s", err.Error())
	}
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to HoverBoard CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func displayName(username, email string) string {
	if username != "" {
		return username
	}
	return email
}
