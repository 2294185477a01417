package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/session"
)

type quizApi struct {
	courses  *course.Service
	sessions *session.Controller
	quizzes  *quiz.Controller
	curation *curation.Service
	reg      *registry
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, api *quizApi) {
	g.POST("/courses/:id/quizzes/:quizId/sessions", api.openCourseQuiz, jwt)
	g.POST("/assessments", api.openAssessment, jwt)
	g.GET("/results", api.results, jwt)

	qg := g.Group("/quiz-sessions", jwt)
	qg.GET("/:sid", api.retrieve)
	qg.POST("/:sid/answers", api.answer)
	qg.POST("/:sid/submit", api.submit)
	qg.DELETE("/:sid", api.close)
}

// openCourseQuiz starts an attempt at a course quiz. Quizzes unlock once every module is completed.
func (api *quizApi) openCourseQuiz(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	courseID, quizID := ctx.Param("id"), ctx.Param("quizId")

	complete, crs, err := api.sessions.CourseComplete(reqCtx, userID, courseID)
	if err != nil {
		return errors.Wrap(err, "checking course completion")
	}
	if _, ok := api.courses.FindQuiz(crs, quizID); !ok {
		return course.ErrQuizNotFound
	}
	if !complete {
		return errQuizzesLocked
	}

	qz, err := api.courses.GetQuiz(reqCtx, quizID)
	if err != nil {
		return errors.Wrap(err, "fetching quiz")
	}
	qz.CourseID = courseID

	s := api.quizzes.Open(userID, courseID, qz, nil)
	api.reg.putQuiz(s)
	return ctx.JSON(http.StatusCreated, s.View())
}

// AssessmentRequest asks for a generated assessment on a subject.
type AssessmentRequest struct {
	Subject   string `json:"subject" validate:"required,notblank"`
	FocusArea string `json:"focus_area"`
}

func (ar *AssessmentRequest) Validate(validate *validator.Validate) error {
	ar.Subject = core.CleanString(ar.Subject)
	ar.FocusArea = core.CleanString(ar.FocusArea)
	return validate.Struct(ar)
}

func (api *quizApi) openAssessment(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data AssessmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssessmentRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	qz, err := api.curation.Assessment(ctx.Request().Context(), data.Subject, data.FocusArea)
	if err != nil {
		return errors.Wrap(err, "generating assessment")
	}
	s := api.quizzes.Open(userID, "", qz, nil)
	api.reg.putQuiz(s)
	return ctx.JSON(http.StatusCreated, s.View())
}

func (api *quizApi) session(ctx echo.Context) (*quiz.Session, error) {
	userID, err := contextUserID(ctx)
	if err != nil {
		return nil, err
	}
	return api.reg.quiz(ctx.Param("sid"), userID)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	s, err := api.session(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s.View())
}

// AnswerRequest toggles Option as the answer to a question.
type AnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Option     string `json:"option" validate:"required"`
}

func (api *quizApi) answer(ctx echo.Context) error {
	s, err := api.session(ctx)
	if err != nil {
		return err
	}
	var data AnswerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnswerRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	if err := s.Select(data.QuestionID, data.Option); err != nil {
		return errors.Wrap(err, "selecting option")
	}
	return ctx.JSON(http.StatusOK, s.View())
}

// submit locks the attempt. A result that could not be saved is reported in the view, not as an error.
func (api *quizApi) submit(ctx echo.Context) error {
	s, err := api.session(ctx)
	if err != nil {
		return err
	}
	if _, err := s.Submit(ctx.Request().Context()); err != nil && errors.Cause(err) != quiz.ErrResultNotSaved {
		return errors.Wrap(err, "submitting quiz")
	}
	return ctx.JSON(http.StatusOK, s.View())
}

func (api *quizApi) close(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err := api.reg.closeQuiz(ctx.Param("sid"), userID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *quizApi) results(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	results, err := api.quizzes.Results(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "querying results")
	}
	return ctx.JSON(http.StatusOK, results)
}
