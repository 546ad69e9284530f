package main

import (
	"log"
	"os"

	echoapi "github.com/padmanabh275/ProjectMgt/apps/api/echo"
	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/company"
	"github.com/padmanabh275/ProjectMgt/core/department"
	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
	logsvc "github.com/padmanabh275/ProjectMgt/services/logger"
	"github.com/padmanabh275/ProjectMgt/storage/database"
	mongorepos "github.com/padmanabh275/ProjectMgt/storage/database/mongodb"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = database.Close(db) }()
	if err = database.EnsureIndexes(db); err != nil {
		logger.Fatal("ensuring indexes", err)
	}

	// set up services
	usrRepo := mongorepos.NewUserRepository(db)
	compRepo := mongorepos.NewCompanyRepository(db)
	deptRepo := mongorepos.NewDepartmentRepository(db)
	taskRepo := mongorepos.NewTaskRepository(db)

	usrSvc := user.NewService(usrRepo)
	compSvc := company.NewService(compRepo, deptRepo, taskRepo)
	deptSvc := department.NewService(deptRepo, taskRepo)
	taskSvc := task.NewService(taskRepo, deptRepo)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:       core.Conf.Server.Address(),
		Logger:        logger,
		UserSvc:       usrSvc,
		CompanySvc:    compSvc,
		DepartmentSvc: deptSvc,
		TaskSvc:       taskSvc,
	})
	logger.Info("server listening on " + core.Conf.Server.Address())
	app.Start()
}
