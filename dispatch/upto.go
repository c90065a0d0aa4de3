package dispatch

// Upto invokes task once for every integer in [0, count], both ends
// inclusive. The range is split into count/step chunks of step integers
// fanned out in parallel across the pool; the remainder runs sequentially
// on the calling goroutine once every chunk has finished. Within a chunk
// values are visited in increasing order; across chunks the order is
// unspecified. Each integer is visited exactly once.
//
// Upto blocks until the whole range has been visited. step < 1 is treated
// as 1; a negative count is a no-op. Errors are not aggregated: a failing
// task does not stop its siblings or the tail, so handle partial failure
// inside task if it matters.
//
// Example:
//
//	var sum atomic.Int64
//	d.Upto(1000, 64, func(i int) { sum.Add(int64(i)) })
func (d *Dispatcher) Upto(count, step int, task func(i int)) {
	d.UptoAt(PriorityDefault, count, step, task)
}

// UptoAt is Upto with the parallel chunks submitted at the given priority.
func (d *Dispatcher) UptoAt(p Priority, count, step int, task func(i int)) {
	if count < 0 {
		return
	}
	if step < 1 {
		step = 1
	}

	nsteps := count / step
	q := d.eng.ConcurrentQueue(p)
	q.Apply(nsteps, func(i int) {
		for j := i * step; j < (i+1)*step; j++ {
			task(j)
		}
	})

	// Sequential tail: the leftover values, count itself included.
	for j := nsteps * step; j <= count; j++ {
		task(j)
	}
}
