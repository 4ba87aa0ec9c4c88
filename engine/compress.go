package engine

import (
	"fmt"
	"io"

	"github.com/arloliu/pipezip/container"
	"github.com/arloliu/pipezip/errs"
)

// Compress reads source in CHUNK_SIZE chunks, compresses up to windowSize
// chunks concurrently on the pool, and writes each chunk's compressed
// frame to sink in input order (spec §4.2).
//
// The fill/drain loop never lets more than windowSize jobs be in flight:
// once the queue is full it drains every job in order before reading more
// input. This keeps memory bounded at O(windowSize * max(CHUNK_SIZE,
// Bound(CHUNK_SIZE))) regardless of source length.
//
// On any error, Compress stops reading further input, waits for jobs
// already spawned to finish (so their buffers can be reclaimed), and
// returns the first error encountered. Partial output may already be on
// sink; Compress never attempts to unwind bytes already written.
func (inst *Instance) Compress(source io.Reader, sink io.Writer) error {
	q := newJobQueue(inst.windowSize)
	var firstErr error

	drainAll := func() {
		for q.len() > 0 {
			j := q.popFront()
			j.wait()

			if firstErr == nil {
				if j.err != nil {
					firstErr = j.err
				} else if err := container.WriteFrame(sink, j.output[:j.resultSize]); err != nil {
					firstErr = err
				}
			}

			inst.chunkBufs.Put(j.input)
			inst.boundBufs.Put(j.output)
		}
	}

	for firstErr == nil {
		if q.full() {
			drainAll()
			if firstErr != nil {
				break
			}
		}

		in := inst.chunkBufs.Get(inst.chunkSize)
		n, err := readChunk(source, in)
		if n == 0 {
			inst.chunkBufs.Put(in)
			if err != nil && err != io.EOF {
				firstErr = fmt.Errorf("%w: %v", errs.ErrSourceIO, err)
			}

			break
		}

		// A short final read gets its own right-sized buffer instead of
		// keeping the full pooled chunk with a shorter data slice (spec
		// §9 decision 2): simpler ownership, and it avoids carrying
		// CHUNK_SIZE-n unused bytes across the worker boundary.
		if n < len(in) {
			short := make([]byte, n)
			copy(short, in[:n])
			inst.chunkBufs.Put(in)
			in = short
		}

		out := inst.boundBufs.Get(inst.outputBound)
		job := newJob(in, out)
		job.data = in

		if werr := inst.pool.Spawn(func() { inst.runCompress(job) }); werr != nil {
			inst.chunkBufs.Put(in)
			inst.boundBufs.Put(out)
			firstErr = fmt.Errorf("engine: spawning compress job: %w", werr)

			break
		}
		q.push(job)

		if err == io.EOF {
			break
		}
	}

	drainAll()

	return firstErr
}

// readChunk fills buf as full as io.ReadFull allows, treating a clean EOF
// with zero bytes read as the normal end of input and a short read (n>0,
// err==io.EOF or io.ErrUnexpectedEOF) as a valid final partial chunk, not
// an error — only a genuine I/O failure from source is reported.
func readChunk(source io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(source, buf)
	switch err {
	case nil:
		return n, nil
	case io.EOF:
		return n, io.EOF
	case io.ErrUnexpectedEOF:
		return n, io.EOF
	default:
		return n, err
	}
}

// runCompress is the worker-side body of one compression Job: acquire a
// context, compress, classify failure, signal. It never touches the
// driver's queue — the only cross-goroutine contact is the Job itself and
// the two pools.
func (inst *Instance) runCompress(j *Job) {
	defer j.signal()

	ctx, err := inst.compressors.Acquire()
	if err != nil {
		j.err = fmt.Errorf("%w: %v", errs.ErrCodecInit, err)
		return
	}

	n, err := ctx.Compress(j.output, j.data)
	if err != nil {
		j.err = fmt.Errorf("%w: %v", errs.ErrCompressFailed, err)
		if errs.KindOf(j.err).TaintsContext() {
			inst.compressors.Discard(ctx)
		} else {
			inst.compressors.Release(ctx)
		}

		return
	}

	j.resultSize = n
	inst.compressors.Release(ctx)
}
