package upload

import (
	"context"
	"fmt"
)

// Artifact is one exported file
type Artifact struct {
	Name string
	Data []byte
	MIME string
}

// Result is the outcome of one artifact upload to one sink
type Result struct {
	Sink     string `json:"sink"`
	Artifact string `json:"artifact"`
	URL      string `json:"url,omitempty"`
	Err      error  `json:"-"`
}

// OK reports whether the upload succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// String renders the outcome for notices and logs
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: upload of %s failed: %v", r.Sink, r.Artifact, r.Err)
	}
	return fmt.Sprintf("%s: %s -> %s", r.Sink, r.Artifact, r.URL)
}

// Publish uploads every artifact to every sink in order. A failing upload
// is recorded and the remaining uploads still run.
func Publish(ctx context.Context, sinks []Sink, artifacts []Artifact) []Result {
	results := make([]Result, 0, len(sinks)*len(artifacts))
	for _, sink := range sinks {
		for _, a := range artifacts {
			res := Result{Sink: sink.Name(), Artifact: a.Name}
			res.URL, res.Err = sink.Upload(ctx, a.Name, a.Data, a.MIME)
			results = append(results, res)
		}
	}
	return results
}

// Failed returns the failed results
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
