// Package tsp - step trace records.
//
// Both engines report progress through the same fixed-shape Step record,
// delivered synchronously and in order to an optional StepFunc. Field
// semantics are identical across engines and strategies:
//
//   - G             cumulative cost from the start to Current.
//   - Distance      edge cost Current→Next (0 when Next is nil).
//   - H             estimate at Current (0 when the strategy uses none).
//   - F             G+H for A*, 0 otherwise.
//   - TotalDistance cost of the path listed in Visited.
//   - Candidate.G   cumulative cost to reach the candidate.
//   - FrontierSize  frontier length after the expansion (0 for the
//     constructive engine, which has no frontier).
//
// Records are append-only: the engine never revisits a record it emitted.
package tsp

import "fmt"

// Candidate is one successor evaluated during an expansion.
type Candidate struct {
	City     int     `json:"city_idx"`
	Name     string  `json:"city"`
	Distance float64 `json:"distance"`
	G        float64 `json:"g"`
	H        float64 `json:"heuristic"`
	F        float64 `json:"f"`
	// Pushed reports whether the successor entered the frontier (state
	// space) or was the committed choice (constructive).
	Pushed bool `json:"pushed"`
}

// Step is one trace record.
type Step struct {
	Index         int         `json:"step"`
	Current       int         `json:"current_idx"`
	CurrentName   string      `json:"current"`
	Next          *int        `json:"next_idx"`
	NextName      string      `json:"next,omitempty"`
	Distance      float64     `json:"distance"`
	G             float64     `json:"g"`
	H             float64     `json:"heuristic"`
	F             float64     `json:"f"`
	TotalDistance float64     `json:"total_distance"`
	Visited       []int       `json:"visited"`
	Candidates    []Candidate `json:"candidates"`
	FrontierSize  int         `json:"frontier_size"`
}

// StepFunc receives trace records. A non-nil error aborts the solve; the
// solver returns it wrapped in ErrCallback. A StepFunc may block to pace
// the search; the engine waits.
type StepFunc func(Step) error

// Recorder collects every record of one solve. It is not safe for
// concurrent use; give each concurrent solve its own Recorder.
type Recorder struct {
	steps []Step
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{steps: make([]Step, 0, 16)}
}

// Record appends s. It satisfies StepFunc and never fails.
func (r *Recorder) Record(s Step) error {
	r.steps = append(r.steps, s)

	return nil
}

// Steps returns a copy of the recorded steps.
func (r *Recorder) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int { return len(r.steps) }

// Last returns the most recent step and whether there is one.
func (r *Recorder) Last() (Step, bool) {
	if len(r.steps) == 0 {
		return Step{}, false
	}

	return r.steps[len(r.steps)-1], true
}

// Tee fans one record out to several StepFuncs in order, stopping at the
// first error. nil entries are skipped.
func Tee(fns ...StepFunc) StepFunc {
	return func(s Step) error {
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			if err := fn(s); err != nil {
				return err
			}
		}

		return nil
	}
}

// tracer numbers records, fills in names and forwards to the callback.
type tracer struct {
	fn    StepFunc
	names []string
	count int
}

// emit stamps s with the next index and delivers it.
func (tr *tracer) emit(s Step) error {
	s.Index = tr.count
	tr.count++
	s.CurrentName = tr.names[s.Current]
	if s.Next != nil {
		s.NextName = tr.names[*s.Next]
	}
	for i := range s.Candidates {
		s.Candidates[i].Name = tr.names[s.Candidates[i].City]
	}
	if tr.fn == nil {
		return nil
	}
	if err := tr.fn(s); err != nil {
		return fmt.Errorf("%w: step %d: %w", ErrCallback, s.Index, err)
	}

	return nil
}

// cityRef returns a pointer to a copy of c for Step.Next.
func cityRef(c int) *int { return &c }
