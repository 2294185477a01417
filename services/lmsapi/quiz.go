package lmsapi

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/quiz"
)

type ResultStore struct {
	c *Client
}

func NewResultStore(c *Client) *ResultStore {
	return &ResultStore{c: c}
}

var _ quiz.Store = (*ResultStore)(nil)

func (s *ResultStore) SaveResult(ctx context.Context, r quiz.Result) error {
	body := resultDTO{
		Title:     r.Title,
		Score:     flexFloat(r.Score),
		TimeTaken: flexFloat(r.TimeTaken),
		UserID:    r.UserID,
	}
	if err := s.c.post(ctx, "/results/save", body, nil, nil); err != nil {
		return errors.Wrap(err, "saving result")
	}
	return nil
}

func (s *ResultStore) QueryResults(ctx context.Context, userID string) ([]quiz.Result, error) {
	var resp []resultDTO
	// no results yet is reported as 404
	err := s.c.get(ctx, "/results/user/"+url.PathEscape(userID), &resp, statusErrors{404: errNoResults})
	if err != nil && err != errNoResults {
		return nil, errors.Wrap(err, "querying results")
	}
	results := make([]quiz.Result, 0, len(resp))
	for _, dto := range resp {
		results = append(results, dto.toResult())
	}
	return results, nil
}

var errNoResults = errors.New("no results")
