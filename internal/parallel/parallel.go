// Copyright 2025-2026 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package parallel provides fork-join helpers for splitting index ranges
// across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Execute processes [iStart, iEnd) in parallel chunks and waits for all of
// them. nbTasks caps the number of goroutines; values below 1 fall back to
// GOMAXPROCS.
func Execute(iStart, iEnd, nbTasks int, work func(start, end int)) {
	<-ExecuteAsync(iStart, iEnd, nbTasks, work)
}

// ExecuteAsync processes [iStart, iEnd) in parallel chunks and returns a
// channel that closes once all chunks are done.
func ExecuteAsync(iStart, iEnd, nbTasks int, work func(start, end int)) <-chan struct{} {
	if nbTasks < 1 {
		nbTasks = runtime.GOMAXPROCS(0)
	}

	nbIterations := iEnd - iStart // iEnd is not included
	nbIterationsPerTask := nbIterations / nbTasks
	if nbIterationsPerTask < 1 {
		nbIterationsPerTask = 1
		nbTasks = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := nbIterations - nbTasks*nbIterationsPerTask
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		start := iStart + i*nbIterationsPerTask + extraTasksOffset
		end := start + nbIterationsPerTask
		if extraTasks > 0 {
			end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(start, end)
			wg.Done()
		}()
	}

	chDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(chDone)
	}()
	return chDone
}
