package certificate

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/user"
)

type (
	UserGetter interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	// Certificate attests that a student completed every module of a course.
	Certificate struct {
		UserID      string    `json:"user_id"`
		StudentName string    `json:"student_name"`
		CourseID    string    `json:"course_id"`
		CourseName  string    `json:"course_name"`
		IssuedAt    time.Time `json:"issued_at"`
		Code        string    `json:"code"`
	}

	// Issuer mails completion certificates.
	Issuer struct {
		users   UserGetter
		mailSvc core.EmailService
		secret  string
		appName string
		log     core.Logger
	}
)

func NewIssuer(users UserGetter, mailSvc core.EmailService, secret, appName string, logger core.Logger) *Issuer {
	return &Issuer{users: users, mailSvc: mailSvc, secret: secret, appName: appName, log: logger}
}

// Issue mails userID a certificate for crs.
func (iss *Issuer) Issue(ctx context.Context, userID string, crs course.Course) (Certificate, error) {
	usr, err := iss.users.GetByID(ctx, userID)
	if err != nil {
		return Certificate{}, errors.Wrap(err, "fetching student")
	}

	cert := Certificate{
		UserID:      usr.ID,
		StudentName: usr.Name,
		CourseID:    crs.ID,
		CourseName:  crs.Name,
		IssuedAt:    NowFunc().UTC(),
		Code:        MakeCode(iss.secret, usr.ID, crs.ID),
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Course completed: " + crs.Name,
		TemplateName: "certificate",
		TemplateData: map[string]interface{}{
			"AppName":     iss.appName,
			"StudentName": cert.StudentName,
			"CourseName":  cert.CourseName,
			"IssuedOn":    cert.IssuedAt.Format("January 2, 2006"),
			"Code":        cert.Code,
		},
	}
	if err := msg.Attach(strings.NewReader(cert.Text(iss.appName)), "certificate.txt", "text/plain"); err != nil {
		return Certificate{}, errors.Wrap(err, "attaching certificate")
	}
	iss.mailSvc.SendMessages(msg)
	return cert, nil
}

// OnCourseComplete issues a certificate, logging failures.
func (iss *Issuer) OnCourseComplete(ctx context.Context, userID string, crs course.Course) {
	if _, err := iss.Issue(ctx, userID, crs); err != nil && iss.log != nil {
		iss.log.Error("issuing certificate", err, map[string]interface{}{"userID": userID, "courseID": crs.ID})
	}
}

// Text renders the certificate as plain text.
func (c Certificate) Text(appName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - Certificate of Completion\n\n", appName)
	fmt.Fprintf(&b, "This certifies that %s completed the course \"%s\" on %s.\n\n",
		c.StudentName, c.CourseName, c.IssuedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Verification code: %s\n", c.Code)
	return b.String()
}
