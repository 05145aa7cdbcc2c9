package spade

import (
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

// A Job holds the arguments for one call to Generate.
type Job struct {
	Start   model3d.Coord3D
	End     model3d.Coord3D
	Curve   Curve
	Options *Options
}

// GenerateBatch runs Generate for every job, returning the profiles and
// errors in the same order as jobs.
//
// The concurrency argument specifies the maximum number of Goroutines to
// use. If concurrency is 0, GOMAXPROCS is used.
func GenerateBatch(jobs []Job, concurrency int) ([]Profile, []error) {
	profiles := make([]Profile, len(jobs))
	errs := make([]error, len(jobs))
	essentials.ConcurrentMap(concurrency, len(jobs), func(i int) {
		job := jobs[i]
		profiles[i], errs[i] = Generate(job.Start, job.End, job.Curve, job.Options)
	})
	return profiles, errs
}
