package engine

// Job is a self-contained unit describing one chunk's work (spec §3):
// owned input and output buffers, the slice of the input actually in use,
// the result of the codec call, and a one-shot completion signal.
//
// Lifecycle: created by the driver immediately before spawn; mutated
// exclusively by one worker between spawn and the done signal; read-only
// and consumed by the driver after done fires. No shared-mutable access to
// the buffers is ever needed because ownership moves, it is never shared.
type Job struct {
	input  []byte // owned input buffer
	data   []byte // view into input covering only the bytes in play
	output []byte // owned output buffer

	resultSize int
	err        error

	done chan struct{}
}

func newJob(input, output []byte) *Job {
	return &Job{input: input, output: output, done: make(chan struct{})}
}

// wait blocks until the job's worker has signaled completion. Safe to call
// more than once and is the driver's only suspension point on job state.
func (j *Job) wait() { <-j.done }

// signal marks the job complete. Called exactly once, by the worker that
// ran it, after every field the driver will read has its final value —
// the channel close provides the happens-before edge the driver relies on
// to observe those writes.
func (j *Job) signal() { close(j.done) }
