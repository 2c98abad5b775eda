package commands

import (
	"fmt"
	"io"

	"statekeep/internal/domain"
)

func printCounter(w io.Writer, s domain.CounterState) {
	fmt.Fprintf(w, "count: %d\n", s.Count)
}

func printUser(w io.Writer, s domain.UserState) {
	if !s.IsLoggedIn || s.User == nil {
		fmt.Fprintln(w, "logged out")
		return
	}
	u := s.User
	fmt.Fprintf(w, "logged in as %s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(w, "  id:     %s\n", u.ID)
	if u.Avatar != "" {
		fmt.Fprintf(w, "  avatar: %s\n", u.Avatar)
	}
}
