package pprint

import (
	"context"
	"fmt"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("countdown.pprint")

// Job is one buffer of programs to decode against its cards.
type Job struct {
	Name  string // label used in errors and logs
	Cards Cards
	Code  []byte
}

// DecodeBatches decodes jobs on up to workers goroutines and returns the
// expressions of each job in input order. workers <= 0 uses GOMAXPROCS.
// The first malformed job cancels the rest.
func (d *Decoder) DecodeBatches(ctx context.Context, jobs []Job, workers int) ([][]string, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([][]string, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			job := jobs[i]
			exprs, err := d.Decode(job.Cards, job.Code)
			if err != nil {
				return fmt.Errorf("job %d %q: %w", i, job.Name, err)
			}
			log.Debugf("decoded %q: %d expressions from %d bytes", job.Name, len(exprs), len(job.Code))
			results[i] = exprs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
