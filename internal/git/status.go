package git

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"mergepick/internal/util"
)

// FileItem is one changed file from git status.
type FileItem struct {
	Path        string
	Status      string
	HasStaged   bool
	HasUnstaged bool
	// Unmerged is set for paths git reports as conflicted.
	Unmerged bool
}

type StatusService interface {
	ListChangedFiles(ctx context.Context, cwd string) ([]FileItem, error)
	ListConflictedFiles(ctx context.Context, cwd string) ([]string, error)
}

type statusService struct{}

func NewStatusService() StatusService {
	return statusService{}
}

func (statusService) ListChangedFiles(ctx context.Context, cwd string) ([]FileItem, error) {
	out, err := util.Run(ctx, cwd, "git", "status", "--porcelain=v2", "--untracked-files=all", "-z")
	if err != nil {
		return nil, err
	}

	items, err := parsePorcelainV2Z([]byte(out))
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})

	return items, nil
}

func (s statusService) ListConflictedFiles(ctx context.Context, cwd string) ([]string, error) {
	items, err := s.ListChangedFiles(ctx, cwd)
	if err != nil {
		return nil, err
	}
	return conflictedPaths(items), nil
}

func conflictedPaths(items []FileItem) []string {
	paths := make([]string, 0, len(items))
	for _, item := range items {
		if item.Unmerged {
			paths = append(paths, item.Path)
		}
	}
	return paths
}

// Number of space separated fields before the path in each porcelain v2 record type.
const (
	ordinaryFields = 8
	renameFields   = 9
	unmergedFields = 10
)

func parsePorcelainV2Z(data []byte) ([]FileItem, error) {
	records := bytes.Split(data, []byte{0})
	items := make([]FileItem, 0, len(records))

	for i := 0; i < len(records); i++ {
		rec := string(records[i])
		if rec == "" {
			continue
		}

		switch rec[0] {
		case '1':
			path, xy, err := splitRecord(rec, ordinaryFields)
			if err != nil {
				return nil, err
			}
			items = append(items, itemFromXY(path, xy))

		case 'u':
			path, xy, err := splitRecord(rec, unmergedFields)
			if err != nil {
				return nil, err
			}
			item := itemFromXY(path, xy)
			item.Unmerged = true
			items = append(items, item)

		case '2':
			path, xy, err := splitRecord(rec, renameFields)
			if err != nil {
				return nil, fmt.Errorf("unexpected rename/copy record: %q", rec)
			}
			items = append(items, itemFromXY(path, xy))
			if i+1 < len(records) {
				i++ // consume the original path record emitted for -z rename/copy entries
			}

		case '?':
			path := strings.TrimPrefix(rec, "? ")
			items = append(items, FileItem{
				Path:        path,
				Status:      "??",
				HasStaged:   false,
				HasUnstaged: true,
			})

		case '!':
			continue

		case '#':
			continue

		default:
			return nil, fmt.Errorf("unknown porcelain record: %q", rec)
		}
	}

	return items, nil
}

// splitRecord returns the path and XY code of a record with n fields before the path.
// Paths may contain spaces, so only the leading fields are split.
func splitRecord(rec string, n int) (string, string, error) {
	fields := strings.SplitN(rec, " ", n+1)
	if len(fields) != n+1 || fields[n] == "" {
		return "", "", fmt.Errorf("unexpected porcelain record: %q", rec)
	}
	return fields[n], fields[1], nil
}

func itemFromXY(path, xy string) FileItem {
	hasStaged := len(xy) > 0 && xy[0] != '.'
	hasUnstaged := len(xy) > 1 && xy[1] != '.'
	status := strings.TrimSpace(xy)
	if status == "" {
		status = ".."
	}

	return FileItem{
		Path:        path,
		Status:      status,
		HasStaged:   hasStaged,
		HasUnstaged: hasUnstaged,
	}
}
