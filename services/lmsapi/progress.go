package lmsapi

import (
	"context"

	"github.com/trezcool/academia/core/progress"
)

type ProgressStore struct {
	c *Client
}

func NewProgressStore(c *Client) *ProgressStore {
	return &ProgressStore{c: c}
}

var _ progress.Store = (*ProgressStore)(nil)

type progressDTO struct {
	UserID           string    `json:"userId,omitempty"`
	CourseID         string    `json:"courseId,omitempty"`
	CompletedModules []int     `json:"completedModules"`
	CurrentModule    flexFloat `json:"currentModule"`
}

func (s *ProgressStore) GetProgress(ctx context.Context, userID, courseID string) (progress.Progress, error) {
	var resp progressDTO
	body := map[string]string{"userId": userID, "courseId": courseID}
	if err := s.c.post(ctx, "/user/getProgress", body, &resp, statusErrors{404: progress.ErrNotFound}); err != nil {
		return progress.Progress{}, err
	}
	p := progress.Progress{CompletedModules: resp.CompletedModules, CurrentModule: resp.CurrentModule.int()}
	p.Normalize()
	return p, nil
}

func (s *ProgressStore) UpdateProgress(ctx context.Context, userID, courseID string, p progress.Progress) error {
	p.Normalize()
	body := progressDTO{
		UserID:           userID,
		CourseID:         courseID,
		CompletedModules: p.CompletedModules,
		CurrentModule:    flexFloat(p.CurrentModule),
	}
	return s.c.post(ctx, "/user/updateProgress", body, nil, nil)
}
