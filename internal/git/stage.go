package git

import (
	"context"

	"mergepick/internal/util"
)

// StageService marks resolved paths as merged in the index.
type StageService interface {
	Stage(ctx context.Context, cwd string, paths ...string) error
}

type stageService struct{}

func NewStageService() StageService {
	return stageService{}
}

func (stageService) Stage(ctx context.Context, cwd string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := util.Run(ctx, cwd, "git", args...)
	return err
}
