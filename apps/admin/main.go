package main

import (
	"log"
	"os"

	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
	emailsvc "github.com/padmanabh275/ProjectMgt/services/email"
	logsvc "github.com/padmanabh275/ProjectMgt/services/logger"
	"github.com/padmanabh275/ProjectMgt/storage/database"
	mongorepos "github.com/padmanabh275/ProjectMgt/storage/database/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	appLogger := logsvc.NewRollbarLogger(logger, core.Conf)
	appLogger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer func() { _ = database.Close(db) }()

	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}

	usrRepo := mongorepos.NewUserRepository(db)
	compRepo := mongorepos.NewCompanyRepository(db)
	taskRepo := mongorepos.NewTaskRepository(db)

	// start CLI
	cli := commandLine{
		usrSvc:    user.NewService(usrRepo),
		reminders: task.NewReminderService(taskRepo, compRepo, usrRepo, mailSvc, appLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
