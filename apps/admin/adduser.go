package main

import (
	"context"
	"fmt"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
)

// addUser creates a user.User and prints its ID.
func (cli *commandLine) addUser(name, email, role string) error {
	usr, err := cli.usrSvc.Create(context.Background(), user.NewUser{Name: name, Email: email, Role: role})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "user %d created\n", usr.ID)
	return nil
}

// addCourse creates a course.Course and prints its ID.
func (cli *commandLine) addCourse(title string, weeks int) error {
	nc := course.NewCourse{Title: title}
	if weeks != 0 {
		nc.NumWeeks = &weeks
	}
	crs, err := cli.courseSvc.Create(context.Background(), nc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "course %d created\n", crs.ID)
	return nil
}
