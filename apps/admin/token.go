package main

import (
	"fmt"

	echoapi "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/apps/api/echo"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

// token prints an API token for an actor. The user is not looked up: actors are opaque.
func (cli *commandLine) token(userID int, role string) error {
	if !core.IsKnownRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	token, err := echoapi.GenerateToken(cli.conf, core.Actor{ID: userID, Role: role})
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
