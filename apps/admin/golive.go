package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

func (cli *commandLine) goLive(sessionID int, title, link string) error {
	created, err := cli.coordinator.GoLive(context.Background(), sessionID, title, link)
	if err != nil {
		return errors.Wrap(err, "going live")
	}
	// mirror e-mails are sent in the background, the process must not exit before them
	cli.mailSvc.Wait()
	fmt.Fprintf(cli.out, "%d students notified\n", len(created))
	return nil
}

func (cli *commandLine) purge(ids []int) error {
	n, err := cli.enrollmentSvc.Purge(context.Background(), ids...)
	if err != nil {
		return errors.Wrap(err, "purging enrollments")
	}
	fmt.Fprintf(cli.out, "%d enrollments purged\n", n)
	return nil
}
