package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/peopleops/hrms-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// LeaveNotificationKind selects the leave template variant.
type LeaveNotificationKind string

const (
	LeaveApplied  LeaveNotificationKind = "applied"
	LeaveApproved LeaveNotificationKind = "approved"
	LeaveRejected LeaveNotificationKind = "rejected"
)

// LeaveDetails carries the leave fields rendered into the notification.
type LeaveDetails struct {
	LeaveType       string
	StartDate       string
	EndDate         string
	TotalDays       float64
	Status          string
	RejectionReason string
}

// PayrollDetails carries the payroll fields rendered into the notification.
type PayrollDetails struct {
	Month     int
	Year      int
	NetSalary string
	Status    string
}

// Service sends workflow notifications. Callers treat delivery as best
// effort: failures are logged and never fail the primary operation.
type Service interface {
	SendLeaveNotification(to, employeeName string, details LeaveDetails, kind LeaveNotificationKind) error
	SendPayrollNotification(to, employeeName string, details PayrollDetails) error
}

type serviceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewEmailService(cfg config.SMTPConfig) (Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &serviceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type leaveEmailData struct {
	EmployeeName    string
	LeaveType       string
	StartDate       string
	EndDate         string
	TotalDays       float64
	Status          string
	RejectionReason string
}

func (s *serviceImpl) SendLeaveNotification(to, employeeName string, details LeaveDetails, kind LeaveNotificationKind) error {
	data := leaveEmailData{
		EmployeeName:    employeeName,
		LeaveType:       details.LeaveType,
		StartDate:       details.StartDate,
		EndDate:         details.EndDate,
		TotalDays:       details.TotalDays,
		Status:          details.Status,
		RejectionReason: details.RejectionReason,
	}

	var subject, tmplName string
	switch kind {
	case LeaveApplied:
		subject = "Leave application received"
		tmplName = "leave_applied.html"
	case LeaveApproved:
		subject = "Leave application approved"
		tmplName = "leave_approved.html"
	case LeaveRejected:
		subject = "Leave application rejected"
		tmplName = "leave_rejected.html"
	default:
		return fmt.Errorf("unknown leave notification kind: %s", kind)
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, tmplName, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, subject, body.String())
}

type payrollEmailData struct {
	EmployeeName string
	Month        int
	Year         int
	NetSalary    string
	Status       string
}

func (s *serviceImpl) SendPayrollNotification(to, employeeName string, details PayrollDetails) error {
	data := payrollEmailData{
		EmployeeName: employeeName,
		Month:        details.Month,
		Year:         details.Year,
		NetSalary:    details.NetSalary,
		Status:       details.Status,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "payroll_processed.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Payroll processed for %d/%d", details.Month, details.Year), body.String())
}

func (s *serviceImpl) sendHTML(to, subject, htmlBody string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.cfg.From, to, subject, htmlBody,
	))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
