package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/dashboard"
	"github.com/trezcool/academia/core/user"
)

type adminApi struct {
	users     *user.Service
	courses   *course.Service
	dashboard *dashboard.Service
	validate  *validator.Validate
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, api *adminApi) {
	ag := g.Group("/admin", jwt, adminMiddleware())

	ag.GET("/courses", api.queryCourses)
	ag.POST("/courses", api.createCourse)
	ag.GET("/courses/:id", api.retrieveCourse)
	ag.DELETE("/courses/:id", api.destroyCourse)
	ag.POST("/courses/:id/quizzes", api.createQuiz)

	ag.GET("/quizzes/:id", api.retrieveQuiz)
	ag.DELETE("/quizzes/:id", api.destroyQuiz)
	ag.POST("/quizzes/:id/questions", api.addQuestion)
	ag.DELETE("/questions/:id", api.destroyQuestion)

	ag.GET("/students", api.queryStudents)
	ag.GET("/students/:id", api.retrieveStudent)
}

// Courses

func (api *adminApi) queryCourses(ctx echo.Context) error {
	courses, err := api.courses.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *adminApi) createCourse(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if err := api.courses.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *adminApi) retrieveCourse(ctx echo.Context) error {
	crs, err := api.courses.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "fetching course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *adminApi) destroyCourse(ctx echo.Context) error {
	if err := api.courses.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Quizzes

func (api *adminApi) createQuiz(ctx echo.Context) error {
	var data course.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	data.CourseID = ctx.Param("id")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if err := api.courses.CreateQuiz(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *adminApi) retrieveQuiz(ctx echo.Context) error {
	qz, err := api.courses.GetQuiz(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "fetching quiz")
	}
	return ctx.JSON(http.StatusOK, qz)
}

func (api *adminApi) destroyQuiz(ctx echo.Context) error {
	if err := api.courses.DeleteQuiz(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) addQuestion(ctx echo.Context) error {
	var data course.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}
	data.QuizID = ctx.Param("id")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if err := api.courses.AddQuestion(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "adding question")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *adminApi) destroyQuestion(ctx echo.Context) error {
	if err := api.courses.DeleteQuestion(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting question")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Students

func (api *adminApi) queryStudents(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []user.User{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	students, err := api.users.Students(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	ordering.SortUsers(students)
	return ctx.JSON(http.StatusOK, students)
}

// retrieveStudent returns a student's dashboard.
func (api *adminApi) retrieveStudent(ctx echo.Context) error {
	sum, err := api.dashboard.Summary(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "building student dashboard")
	}
	return ctx.JSON(http.StatusOK, sum)
}
