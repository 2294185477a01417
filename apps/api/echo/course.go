package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/certificate"
	"github.com/trezcool/academia/core/session"
	"github.com/trezcool/academia/core/user"
)

type courseApi struct {
	conf     *core.Config
	users    *user.Service
	sessions *session.Controller
	reg      *registry
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, api *courseApi) {
	cg := g.Group("/courses", jwt)
	cg.GET("", api.catalog)
	cg.GET("/enrolled", api.enrolled)
	cg.POST("/:id/enroll", api.enroll)
	cg.DELETE("/:id/enroll", api.unenroll)
	cg.POST("/:id/sessions", api.openSession)

	sg := g.Group("/sessions", jwt)
	sg.GET("/:sid", api.retrieveSession)
	sg.POST("/:sid/select", api.selectModule)
	sg.POST("/:sid/next", api.next)
	sg.POST("/:sid/complete", api.complete)
	sg.DELETE("/:sid", api.closeSession)

	// un-authed
	g.GET("/certificates/verify", api.verifyCertificate)
}

// Enrollment

func (api *courseApi) catalog(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	entries, err := api.users.Catalog(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing catalog")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *courseApi) enrolled(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	enrollments, err := api.users.Enrollments(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing enrollments")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *courseApi) enroll(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.users.Enroll(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) unenroll(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.users.Unenroll(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "unenrolling")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Course sessions

func (api *courseApi) openSession(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	courseID := ctx.Param("id")
	enrolled, err := api.users.IsEnrolled(ctx.Request().Context(), userID, courseID)
	if err != nil {
		return errors.Wrap(err, "checking enrollment")
	}
	if !enrolled {
		return errNotEnrolled
	}

	s, err := api.sessions.Open(ctx.Request().Context(), userID, courseID, api.reg.expireCourse)
	if err != nil {
		return errors.Wrap(err, "opening course session")
	}
	api.reg.putCourse(s)
	return ctx.JSON(http.StatusCreated, s.View())
}

func (api *courseApi) session(ctx echo.Context) (*session.Session, error) {
	userID, err := contextUserID(ctx)
	if err != nil {
		return nil, err
	}
	return api.reg.course(ctx.Param("sid"), userID)
}

func (api *courseApi) retrieveSession(ctx echo.Context) error {
	s, err := api.session(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s.View())
}

// SelectModuleRequest selects a module of the course. Locked modules are ignored.
type SelectModuleRequest struct {
	Module *int `json:"module"`
}

func (api *courseApi) selectModule(ctx echo.Context) error {
	s, err := api.session(ctx)
	if err != nil {
		return err
	}
	var data SelectModuleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectModuleRequest")
	}
	if data.Module == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "module", Error: "this field is required"})
	}
	if _, err := s.SelectModule(*data.Module); err != nil {
		return errors.Wrap(err, "selecting module")
	}
	return ctx.JSON(http.StatusOK, s.View())
}

func (api *courseApi) next(ctx echo.Context) error {
	s, err := api.session(ctx)
	if err != nil {
		return err
	}
	if _, err := s.Next(); err != nil {
		return errors.Wrap(err, "moving to next module")
	}
	return ctx.JSON(http.StatusOK, s.View())
}

func (api *courseApi) complete(ctx echo.Context) error {
	s, err := api.session(ctx)
	if err != nil {
		return err
	}
	if _, err := s.Complete(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "completing module")
	}
	return ctx.JSON(http.StatusOK, s.View())
}

func (api *courseApi) closeSession(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.reg.closeCourse(ctx.Param("sid"), userID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Certificates

type CertificateVerification struct {
	Valid    bool   `json:"valid"`
	IssuedOn string `json:"issued_on,omitempty"`
}

func (api *courseApi) verifyCertificate(ctx echo.Context) error {
	userID, courseID, code := ctx.QueryParam("user_id"), ctx.QueryParam("course_id"), ctx.QueryParam("code")
	if userID == "" || courseID == "" || code == "" {
		return core.NewValidationError(errors.New("user_id, course_id and code are required"))
	}
	issued, err := certificate.VerifyCode(api.conf.SecretKey, userID, courseID, code)
	if err != nil {
		return ctx.JSON(http.StatusOK, CertificateVerification{})
	}
	return ctx.JSON(http.StatusOK, CertificateVerification{Valid: true, IssuedOn: issued.Format("2006-01-02")})
}
