package ports

import "gradmend/internal/domain"

// PatchHistory is the side index of past patch runs. It is advisory:
// recording must never fail an otherwise successful run.
type PatchHistory interface {
	Open(projectPath string) error
	Close() error

	Record(run *domain.PatchRun) error
	Recent(path string, limit int) ([]domain.PatchRun, error)
}
