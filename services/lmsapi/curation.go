package lmsapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/curation"
)

// Curation implements curation.Generator against the curation service
// and curation.Repository against the remote API.
type Curation struct {
	c *Client
}

func NewCuration(c *Client) *Curation {
	return &Curation{c: c}
}

var (
	_ curation.Generator  = (*Curation)(nil)
	_ curation.Repository = (*Curation)(nil)
)

func (cur *Curation) generate(ctx context.Context, path string, req curation.Request) (curation.GeneratedCourse, error) {
	var resp generatedCourseDTO
	body := curationRequestDTO{Subject: req.Subject, FocusArea: req.FocusArea, Difficulty: req.Difficulty, Units: req.Units}
	if err := cur.c.do(ctx, cur.c.curation, http.MethodPost, path, body, &resp, nil); err != nil {
		return curation.GeneratedCourse{}, errors.Wrap(err, "generating")
	}
	return resp.toGenerated(), nil
}

func (cur *Curation) GenerateCourse(ctx context.Context, req curation.Request) (curation.GeneratedCourse, error) {
	return cur.generate(ctx, "/generate-course", req)
}

func (cur *Curation) GenerateQuestions(ctx context.Context, req curation.Request) (curation.GeneratedCourse, error) {
	return cur.generate(ctx, "/generate-question", req)
}

func (cur *Curation) SaveGenerated(ctx context.Context, userID string, gc curation.GeneratedCourse) error {
	if err := cur.c.post(ctx, "/gencourse/add", fromGenerated(userID, gc), nil, nil); err != nil {
		return errors.Wrap(err, "saving generated course")
	}
	return nil
}

func (cur *Curation) QueryGenerated(ctx context.Context, userID string) ([]curation.SavedCourse, error) {
	var resp []generatedCourseDTO
	err := cur.c.get(ctx, "/gencourse/all/"+url.PathEscape(userID), &resp, statusErrors{404: errNoResults})
	if err != nil && err != errNoResults {
		return nil, errors.Wrap(err, "querying generated courses")
	}
	saved := make([]curation.SavedCourse, 0, len(resp))
	for _, dto := range resp {
		sc := curation.SavedCourse{ID: dto.ID, UserID: dto.UserID, GeneratedCourse: dto.toGenerated()}
		if dto.CreatedAt != nil {
			sc.CreatedAt = time.Time(*dto.CreatedAt)
		}
		if sc.UserID == "" {
			sc.UserID = userID
		}
		saved = append(saved, sc)
	}
	return saved, nil
}
