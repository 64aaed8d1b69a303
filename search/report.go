package search

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/domino14/wordsets/parallel"
	"github.com/domino14/wordsets/stats"
)

// Report summarizes one search run.
type Report struct {
	Search   string        `yaml:"search"`
	Inputs   []string      `yaml:"inputs"`
	Output   string        `yaml:"output"`
	Words    int           `yaml:"words,omitempty"`
	Groups   int           `yaml:"groups,omitempty"`
	Workers  int           `yaml:"workers"`
	Jobs     int           `yaml:"jobs,omitempty"`
	Failed   int           `yaml:"failed"`
	Checked  int64         `yaml:"checked,omitempty"`
	Found    int64         `yaml:"found"`
	Written  int64         `yaml:"written"`
	Duration time.Duration `yaml:"duration"`

	started time.Time
}

func newReport(name string, workers int) *Report {
	return &Report{Search: name, Workers: workers, started: time.Now()}
}

func (r *Report) finish(sum parallel.Summary, counters *stats.Counters) {
	snap := counters.Snapshot()
	r.Jobs = sum.Jobs
	r.Failed = sum.Failed
	if snap.Failed > int64(r.Failed) {
		r.Failed = int(snap.Failed)
	}
	r.Checked = snap.Checked
	r.Found = snap.Found
	r.Written = snap.Written
	r.Duration = time.Since(r.started)
}

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
