package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf          *core.Config
	out           io.Writer
	repos         *storage.Repositories
	mailSvc       core.EmailService
	usrSvc        *user.Service
	courseSvc     *course.Service
	enrollmentSvc *enrollment.Service
	coordinator   *livesession.Coordinator
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, ...) on postgres")
	fmt.Fprintln(cli.out, "  adduser -name NAME -role ROLE [-email EMAIL] - create a user")
	fmt.Fprintln(cli.out, "  addcourse -title TITLE [-weeks N] - create a course, self-paced without -weeks")
	fmt.Fprintln(cli.out, "  token -user ID -role ROLE - print a signed API token")
	fmt.Fprintln(cli.out, "  golive -session ID [-title TITLE] [-link URL] - notify the enrolled students of a session")
	fmt.Fprintln(cli.out, "  purge -enrollment ID[,ID] - hard delete enrollments")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserName := addUserCmd.String("name", "", "The user's display name.")
	addUserEmail := addUserCmd.String("email", "", "The user's email, used to mirror notifications.")
	addUserRole := addUserCmd.String("role", "", "One of: "+strings.Join(core.AllRoles, ", "))

	addCourseCmd := flag.NewFlagSet("addcourse", flag.ContinueOnError)
	addCourseTitle := addCourseCmd.String("title", "", "The course title.")
	addCourseWeeks := addCourseCmd.Int("weeks", 0, "The course duration in weeks, 0 for self-paced.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenUser := tokenCmd.Int("user", 0, "The user ID.")
	tokenRole := tokenCmd.String("role", "", "The role claimed by the token.")

	goLiveCmd := flag.NewFlagSet("golive", flag.ContinueOnError)
	goLiveSession := goLiveCmd.Int("session", 0, "The live session ID.")
	goLiveTitle := goLiveCmd.String("title", "", "The notification title, defaults to the session title.")
	goLiveLink := goLiveCmd.String("link", "", "The join link, defaults to the session link.")

	purgeCmd := flag.NewFlagSet("purge", flag.ContinueOnError)
	purgeIDs := purgeCmd.String("enrollment", "", "Comma separated enrollment IDs.")

	for _, fs := range []*flag.FlagSet{addUserCmd, addCourseCmd, tokenCmd, goLiveCmd, purgeCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addUserName == "" || *addUserRole == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, *addUserRole)
	case "addcourse":
		if err := addCourseCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addCourseTitle == "" {
			addCourseCmd.Usage()
			return errHelp
		}
		return cli.addCourse(*addCourseTitle, *addCourseWeeks)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *tokenUser <= 0 || *tokenRole == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUser, *tokenRole)
	case "golive":
		if err := goLiveCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *goLiveSession <= 0 {
			goLiveCmd.Usage()
			return errHelp
		}
		return cli.goLive(*goLiveSession, *goLiveTitle, *goLiveLink)
	case "purge":
		if err := purgeCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		ids, err := parseIDs(*purgeIDs)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			purgeCmd.Usage()
			return errHelp
		}
		return cli.purge(ids)
	default:
		cli.printUsage()
		return errHelp
	}
}

// parseIDs parses "1, 2,3" into ids.
func parseIDs(s string) ([]int, error) {
	ids := make([]int, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
