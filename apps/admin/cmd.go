package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrSvc    user.ServiceInterface
	reminders *task.ReminderService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createmaster -name NAME -email EMAIL - ensure the master account exists; the password is prompted next")
	fmt.Println("  resetpassword -email EMAIL - reset a user's password")
	fmt.Println("  sendreminders - email each company's admins a digest of overdue and due-today tasks")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createMasterCmd := flag.NewFlagSet("createmaster", flag.ExitOnError)
	createMasterName := createMasterCmd.String("name", "Master User", "The master account's display name.")
	createMasterEmail := createMasterCmd.String("email", "", "The master account's email. The password will be prompted next.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	switch args[1] {
	case "createmaster":
		if err := createMasterCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createMasterEmail == "" {
			createMasterCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			createMasterCmd.Usage()
			return errHelp
		}
		return cli.createMaster(*createMasterName, *createMasterEmail, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	case "sendreminders":
		return cli.reminders.SendDigests(time.Now())
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
