package pipeline

import "context"

// process runs one queued generation job through its phases.
func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID, "path", job.Path)

	job.SetStatus(StatusExpanding, "expanding")
	expanded, err := o.svc.ExpandNote(ctx, job.request)
	if err != nil {
		log.Error("expansion failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "expanding")
		return
	}

	job.SetStatus(StatusGenerating, "generating")
	result, err := o.svc.GenerateFromText(ctx, job.Path, expanded, o.svc.ResolveParams(job.request))
	if err != nil {
		log.Error("generation failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "generating")
		return
	}

	job.SetResult(result)
	job.SetStatus(StatusCompleted, "done")
	log.Info("generation complete", "output_chars", len(result.Text))
}
