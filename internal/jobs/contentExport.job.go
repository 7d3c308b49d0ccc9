package jobs

import (
	"artistsite/internal/content"
	"artistsite/internal/models"
	"artistsite/internal/services"
	"context"
	"fmt"
	"path/filepath"
	"time"

	logger "github.com/Bparsons0904/goLogger"
)

// ContentExportJob writes the current content as a bundled content file,
// one file per day, so a remote deployment can fall back to the static
// backend.
type ContentExportJob struct {
	store    services.ContentStore
	dir      string
	now      func() time.Time
	log      logger.Logger
	schedule services.Schedule
}

func NewContentExportJob(
	store services.ContentStore,
	dir string,
	schedule services.Schedule,
) *ContentExportJob {
	log := logger.New("contentExportJob")
	log.Info("Creating new content export job", "dir", dir, "schedule", schedule)

	return &ContentExportJob{
		store:    store,
		dir:      dir,
		now:      time.Now,
		log:      log,
		schedule: schedule,
	}
}

func (j *ContentExportJob) Name() string {
	return "DailyContentExport"
}

func (j *ContentExportJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	snapshot, err := j.store.LoadAll(ctx)
	if err != nil {
		return log.Err("failed to load content for export", err)
	}

	path := j.Path()
	if err := content.Write(path, models.NewContentFile(snapshot)); err != nil {
		return log.Err("failed to write content export", err, "path", path)
	}

	log.Info(
		"Content exported",
		"path", path,
		"releases", len(snapshot.Releases),
		"shows", len(snapshot.Shows),
	)
	return nil
}

// Path is the file the next run writes to.
func (j *ContentExportJob) Path() string {
	return filepath.Join(j.dir, fmt.Sprintf("content-%s.json", j.now().UTC().Format("20060102")))
}

func (j *ContentExportJob) Schedule() services.Schedule {
	return j.schedule
}
