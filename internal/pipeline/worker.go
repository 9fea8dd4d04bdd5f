package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/docsift/docsift/internal/outline"
	"github.com/docsift/docsift/internal/pdftext"
)

// Worker processes a single outline-extraction job.
type Worker struct {
	log *slog.Logger
}

func NewWorker(log *slog.Logger) *Worker {
	return &Worker{log: log}
}

// Process runs the full outline pipeline for a job: parse, collect
// candidates, classify.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	job.SetStatus(StatusParsing, "parsing")
	doc, err := pdftext.OpenReader(bytes.NewReader(job.FileData()))
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	defer doc.Close()

	title := doc.Title()
	pages := doc.Pages()

	job.SetStatus(StatusCollecting, "collecting candidates")
	candidates := outline.Collect(pages)

	job.SetStatus(StatusClassifying, "classifying headings")
	entries := outline.Classify(candidates)

	job.SetProgress(len(pages), len(candidates), len(entries))
	job.SetResult(title, entries)
	job.SetStatus(StatusCompleted, "done")
	log.Info("outline extracted", "pages", len(pages), "candidates", len(candidates), "headings", len(entries))
}
