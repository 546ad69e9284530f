package task

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/company"
	"github.com/padmanabh275/ProjectMgt/core/user"
)

type (
	// CompanyLister is the slice of the company store the reminder run needs.
	CompanyLister interface {
		FilterCompanies(filter company.QueryFilter) ([]company.Company, error)
	}

	// RecipientLister is the slice of the user store the reminder run needs.
	RecipientLister interface {
		FilterUsers(filter user.QueryFilter) ([]user.User, error)
	}

	// ReminderService emails each active company's admins a digest of its
	// overdue and due-today tasks.
	ReminderService struct {
		tasks     Repository
		companies CompanyLister
		users     RecipientLister
		mailSvc   core.EmailService
		log       core.Logger
	}
)

func NewReminderService(
	tasks Repository,
	companies CompanyLister,
	users RecipientLister,
	mailSvc core.EmailService,
	log core.Logger,
) *ReminderService {
	return &ReminderService{
		tasks:     tasks,
		companies: companies,
		users:     users,
		mailSvc:   mailSvc,
		log:       log,
	}
}

// SendDigests classifies every active company's tasks against now and sends
// one digest email per company that has overdue or due-today work. Companies
// without admins, or without anything due, are skipped.
func (svc *ReminderService) SendDigests(now time.Time) error {
	active := true
	companies, err := svc.companies.FilterCompanies(company.QueryFilter{IsActive: &active})
	if err != nil {
		return errors.Wrap(err, "listing companies")
	}

	var sent int
	for _, comp := range companies {
		tasks, err := svc.tasks.FilterTasks(QueryFilter{CompanyID: comp.ID})
		if err != nil {
			return errors.Wrapf(err, "listing tasks for company %s", comp.ID)
		}
		b := Classify(tasks, now)
		if len(b.Overdue) == 0 && len(b.DueToday) == 0 {
			continue
		}

		admins, err := svc.users.FilterUsers(user.QueryFilter{CompanyID: comp.ID, Role: access.RoleAdmin})
		if err != nil {
			return errors.Wrapf(err, "listing admins for company %s", comp.ID)
		}
		if len(admins) == 0 {
			svc.log.Warn(fmt.Sprintf("reminders: company %q has due tasks but no admins", comp.Name))
			continue
		}

		to := make([]mail.Address, 0, len(admins))
		for _, adm := range admins {
			to = append(to, mail.Address{Name: adm.Name, Address: adm.Email})
		}
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      to,
			Subject: fmt.Sprintf("Task reminders for %s", comp.Name),
			Body:    digestBody(comp.Name, b),
		})
		sent++
	}

	svc.log.Info(fmt.Sprintf("reminders: sent %d digest(s)", sent))
	return nil
}

func digestBody(companyName string, b Buckets) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Task reminders for %s\n\n", companyName)
	if n := len(b.Overdue); n > 0 {
		fmt.Fprintf(&sb, "%d overdue task(s):\n", n)
		writeTaskLines(&sb, b.Overdue)
		sb.WriteString("\n")
	}
	if n := len(b.DueToday); n > 0 {
		fmt.Fprintf(&sb, "%d task(s) due today:\n", n)
		writeTaskLines(&sb, b.DueToday)
	}
	return sb.String()
}

func writeTaskLines(sb *strings.Builder, tasks []Task) {
	for _, t := range tasks {
		fmt.Fprintf(sb, "- %s (assigned to %s, due %s)\n", t.TaskName, t.AssignedTo, t.Deadline.Format("2006-01-02"))
	}
}
