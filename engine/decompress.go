package engine

import (
	"fmt"
	"io"

	"github.com/arloliu/pipezip/container"
	"github.com/arloliu/pipezip/errs"
)

// Decompress reads length-prefixed frames from source, decompresses up to
// windowSize of them concurrently on the pool, and writes each chunk's
// original bytes to sink in frame order (spec §4.3), mirroring Compress.
//
// Decompress has no way to know a frame's original size in advance, so
// every job is given a full CHUNK_SIZE output buffer; a frame whose
// decompressed size is smaller simply uses a prefix of it.
func (inst *Instance) Decompress(source io.Reader, sink io.Writer) error {
	q := newJobQueue(inst.windowSize)
	var firstErr error

	drainAll := func() {
		for q.len() > 0 {
			j := q.popFront()
			j.wait()

			if firstErr == nil {
				if j.err != nil {
					firstErr = j.err
				} else if _, err := sink.Write(j.output[:j.resultSize]); err != nil {
					firstErr = fmt.Errorf("%w: %v", errs.ErrSinkIO, err)
				}
			}

			inst.boundBufs.Put(j.input)
			inst.chunkBufs.Put(j.output)
		}
	}

	for firstErr == nil {
		if q.full() {
			drainAll()
			if firstErr != nil {
				break
			}
		}

		length, ok, err := container.ReadFrameLength(source)
		if err != nil {
			firstErr = err
			break
		}
		if !ok {
			break
		}

		in := inst.boundBufs.Get(int(length))
		if err := container.ReadFramePayloadInto(source, in); err != nil {
			inst.boundBufs.Put(in)
			firstErr = err

			break
		}

		out := inst.chunkBufs.Get(inst.chunkSize)
		job := newJob(in, out)
		job.data = in

		if werr := inst.pool.Spawn(func() { inst.runDecompress(job) }); werr != nil {
			inst.boundBufs.Put(in)
			inst.chunkBufs.Put(out)
			firstErr = fmt.Errorf("engine: spawning decompress job: %w", werr)

			break
		}
		q.push(job)
	}

	drainAll()

	return firstErr
}

// runDecompress is the worker-side body of one decompression Job.
func (inst *Instance) runDecompress(j *Job) {
	defer j.signal()

	ctx, err := inst.decompressors.Acquire()
	if err != nil {
		j.err = fmt.Errorf("%w: %v", errs.ErrCodecInit, err)
		return
	}

	n, err := ctx.Decompress(j.output, j.data)
	if err != nil {
		j.err = fmt.Errorf("%w: %v", errs.ErrBadData, err)
		if errs.KindOf(j.err).TaintsContext() {
			inst.decompressors.Discard(ctx)
		} else {
			inst.decompressors.Release(ctx)
		}

		return
	}

	j.resultSize = n
	inst.decompressors.Release(ctx)
}
