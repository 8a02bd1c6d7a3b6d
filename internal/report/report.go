// Package report records the outcome of a batch of games as YAML and renders
// a terminal summary of it.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/schedfootball/internal/football"
)

// Meta describes the environment the games ran in.
type Meta struct {
	Version string `yaml:"version"`
	Host    string `yaml:"host,omitempty"`
	CPUs    int    `yaml:"cpus"`
	Policy  string `yaml:"policy"`
}

// Run is one game as written to the report.
type Run struct {
	Index        int       `yaml:"index"`
	RunID        string    `yaml:"run_id"`
	Verdict      string    `yaml:"verdict"`
	Players      int       `yaml:"players"`
	GameTime     string    `yaml:"game_time"`
	Lock         string    `yaml:"lock"`
	IndexMapping string    `yaml:"index_mapping"`
	Phase        string    `yaml:"phase"`
	FinalBallPos uint64    `yaml:"final_ball_pos"`
	Error        string    `yaml:"error,omitempty"`
	StartedAt    time.Time `yaml:"started_at"`
	FinishedAt   time.Time `yaml:"finished_at"`
}

// Totals counts runs per verdict.
type Totals struct {
	Runs    int `yaml:"runs"`
	Passed  int `yaml:"passed"`
	Failed  int `yaml:"failed"`
	Aborted int `yaml:"aborted"`
	Stopped int `yaml:"stopped"`
}

// OK reports whether at least one run was scored, every scored run passed
// and nothing aborted. Stopped runs prove nothing either way.
func (t Totals) OK() bool {
	return t.Passed > 0 && t.Failed == 0 && t.Aborted == 0
}

// Report is the YAML document written by Write.
type Report struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	Meta        Meta      `yaml:"meta"`
	Totals      Totals    `yaml:"totals"`
	Runs        []Run     `yaml:"runs"`
}

// New builds a report from results in run order.
func New(meta Meta, results []football.Result) *Report {
	r := &Report{
		GeneratedAt: time.Now().UTC(),
		Meta:        meta,
		Totals:      Tally(results),
		Runs:        make([]Run, 0, len(results)),
	}
	for i, res := range results {
		run := Run{
			Index:        i + 1,
			RunID:        res.RunID,
			Verdict:      string(res.Verdict()),
			Players:      res.Players,
			GameTime:     res.GameTime.String(),
			Lock:         string(res.LockKind),
			IndexMapping: string(res.IndexMapping),
			Phase:        string(res.Phase),
			FinalBallPos: res.FinalBallPos,
			StartedAt:    res.StartedAt,
			FinishedAt:   res.FinishedAt,
		}
		if res.Err != nil {
			run.Error = res.Err.Error()
		}
		r.Runs = append(r.Runs, run)
	}
	return r
}

// Tally counts results per verdict.
func Tally(results []football.Result) Totals {
	t := Totals{Runs: len(results)}
	for _, res := range results {
		switch res.Verdict() {
		case football.VerdictPass:
			t.Passed++
		case football.VerdictFail:
			t.Failed++
		case football.VerdictAborted:
			t.Aborted++
		case football.VerdictStopped:
			t.Stopped++
		}
	}
	return t
}

// Write saves r to path as YAML, creating the parent directory.
func Write(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}
