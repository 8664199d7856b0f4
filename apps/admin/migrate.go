package main

import (
	"errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage/database"
)

var (
	gooseRunFunc = database.RunMigrations // mockable

	errNoSQL = errors.New("migrations only apply to postgres engines")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.repos.SQL == nil {
		return errNoSQL
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(cli.repos.SQL, args[0], arguments...)
}
