package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/curation"
)

type curationApi struct {
	svc *curation.Service
}

func registerCurationAPI(g *echo.Group, jwt echo.MiddlewareFunc, api *curationApi) {
	cg := g.Group("/curation", jwt)
	cg.POST("/generate", api.generate)
	cg.GET("/courses", api.list)
	cg.POST("/courses", api.save)
}

func (api *curationApi) generate(ctx echo.Context) error {
	var data curation.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to curation.Request")
	}
	gc, err := api.svc.Generate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating course")
	}
	return ctx.JSON(http.StatusOK, gc)
}

func (api *curationApi) save(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data curation.GeneratedCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to curation.GeneratedCourse")
	}
	if err := api.svc.Save(ctx.Request().Context(), userID, data); err != nil {
		return errors.Wrap(err, "saving generated course")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *curationApi) list(ctx echo.Context) error {
	userID, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	saved, err := api.svc.List(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing generated courses")
	}
	return ctx.JSON(http.StatusOK, saved)
}
