package strategy

import (
	"strings"
	"sync"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/fsscan"
	"zarr-checksum-gallery/internal/jobqueue"
)

// dirState is one directory's in-progress collapse accumulator: how many
// of its immediate entries are still unresolved, and the Children
// collected so far from the ones that have resolved.
type dirState struct {
	remaining int
	children []checksum.Child
}

// CollapseArc computes directory checksums as soon as each directory's
// last child resolves, never retaining a full tree. Per-directory state
// lives in one shared map keyed by relpath, guarded by a single mutex —
// the "shared-map" transport variant: any worker may read or update any
// directory's state directly.
func CollapseArc(opts Options) (Result, error) {
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}

	q := jobqueue.New([]string{""}, opts.Logger)
	resultCh := make(chan Result, 1)

	var mu sync.Mutex
	states := map[string]*dirState{}

	var errMu sync.Mutex
	var firstErr error
	recordErr := func(err error) {
		errMu.Lock()
		defer errMu.Unlock()
		if firstErr == nil {
			firstErr = err
			q.Shutdown()
		}
	}

	getOrCreateLocked := func(relpath string) *dirState {
		s, ok := states[relpath]
		if !ok {
			s = &dirState{remaining: -1}
			states[relpath] = s
		}
		return s
	}

	var finishDir func(relpath, digestHex string, fc, bc int64)
	completeChild := func(parentRelpath string, child checksum.Child) {
		mu.Lock()
		state := getOrCreateLocked(parentRelpath)
		state.children = append(state.children, child)
		state.remaining--
		done := state.remaining == 0
		var digestHex string
		var fc, bc int64
		if done {
			digestHex, fc, bc = checksum.Combine(state.children)
			delete(states, parentRelpath)
		}
		mu.Unlock()
		if done {
			finishDir(parentRelpath, digestHex, fc, bc)
		}
	}
	finishDir = func(relpath, digestHex string, fc, bc int64) {
		opts.Logger.Entry(relpath, digestHex)
		if relpath == "" {
			resultCh <- Result{DigestHex: digestHex, FileCount: fc, ByteCount: bc}
			return
		}
		parent, name := splitRelpath(relpath)
		completeChild(parent, checksum.ChildFromDir(name, relpath, digestHex, fc, bc))
	}
	setEntryCount := func(relpath string, count int) {
		mu.Lock()
		state := getOrCreateLocked(relpath)
		state.remaining = count
		done := count == 0
		var digestHex string
		var fc, bc int64
		if done {
			digestHex, fc, bc = checksum.Combine(state.children)
			delete(states, relpath)
		}
		mu.Unlock()
		if done {
			finishDir(relpath, digestHex, fc, bc)
		}
	}

	var workers sync.WaitGroup
	for i := 0; i < threads; i++ {
		threadNo := i
		workers.Add(1)
		go func() {
			defer workers.Done()
			opts.Logger.Trace("[%d] starting thread", threadNo)
			for {
				relpath, ok := q.Pop()
				if !ok {
					opts.Logger.Trace("[%d] ending thread", threadNo)
					return
				}
				opts.Logger.Trace("[%d] popped %q from stack", threadNo, relpath)
				listing, err := fsscan.List(fullPath(opts.RootPath, relpath))
				if err != nil {
					recordErr(err)
					q.Done()
					continue
				}
				kept := listing[:0:0]
				for _, e := range listing {
					if !opts.excluded(e.Name) {
						kept = append(kept, e)
					}
				}
				setEntryCount(relpath, len(kept))

				for _, e := range kept {
					childRel, err := joinRelpath(relpath, e.Name)
					if err != nil {
						recordErr(err)
						continue
					}
					switch e.Kind {
					case fsscan.KindDir:
						opts.Logger.Trace("[%d] pushing %q onto stack", threadNo, childRel)
						q.Push(childRel)
					case fsscan.KindFile:
						digestHex, size, err := hashFile(e.Path)
						if err != nil {
							recordErr(err)
							continue
						}
						opts.Logger.Entry(childRel, digestHex)
						completeChild(relpath, checksum.ChildFromFile(e.Name, checksum.Entry{RelPath: childRel, DigestHex: digestHex, Size: size}))
					}
				}
				q.Done()
			}
		}()
	}
	workers.Wait()

	if firstErr != nil {
		return Result{}, firstErr
	}
	return <-resultCh, nil
}

// splitRelpath divides a "/"-joined relpath into its parent relpath and
// final component. The root's parent is itself "" with no valid name, so
// callers must never call splitRelpath(""); every relpath reaching here
// is the relpath of a directory discovered while listing its parent.
func splitRelpath(relpath string) (parent, name string) {
	idx := strings.LastIndexByte(relpath, '/')
	if idx < 0 {
		return "", relpath
	}
	return relpath[:idx], relpath[idx+1:]
}
