package strategy

import (
	"sync"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/fsscan"
	"zarr-checksum-gallery/internal/jobqueue"
)

type collapseMsgKind int

const (
	msgDirListed collapseMsgKind = iota
	msgChild
)

// collapseMsg is one worker-to-owner report: either "this directory had
// N kept entries" or "this child of this parent has resolved".
type collapseMsg struct {
	kind    collapseMsgKind
	relpath string // for msgDirListed
	count   int    // for msgDirListed
	parent  string // for msgChild
	child   checksum.Child
}

// CollapseMPSC is the channel transport variant of the collapse
// strategy: a single owner goroutine privately holds all per-directory
// state; worker goroutines only list directories, hash files, and report
// completions over an unbuffered channel. The owner performs all
// bookkeeping sequentially, so it needs no locking at all.
func CollapseMPSC(opts Options) (Result, error) {
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}

	q := jobqueue.New([]string{""}, opts.Logger)
	msgCh := make(chan collapseMsg)
	resultCh := make(chan Result, 1)

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
				opts.Logger.Trace("[%d] sending %q listing to owner", threadNo, relpath)
				msgCh <- collapseMsg{kind: msgDirListed, relpath: relpath, count: len(kept)}

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
						opts.Logger.Trace("[%d] sending %q to owner", threadNo, childRel)
						msgCh <- collapseMsg{
							kind:   msgChild,
							parent: relpath,
							child:  checksum.ChildFromFile(e.Name, checksum.Entry{RelPath: childRel, DigestHex: digestHex, Size: size}),
						}
					}
				}
				q.Done()
			}
		}()
	}

	ownerDone := make(chan struct{})
	go func() {
		defer close(ownerDone)
		states := map[string]*dirState{}
		getOrCreate := func(relpath string) *dirState {
			s, ok := states[relpath]
			if !ok {
				s = &dirState{remaining: -1}
				states[relpath] = s
			}
			return s
		}

		var applyChild func(parent string, child checksum.Child)
		var finishDir func(relpath, digestHex string, fc, bc int64)

		applyChild = func(parent string, child checksum.Child) {
			state := getOrCreate(parent)
			state.children = append(state.children, child)
			state.remaining--
			if state.remaining == 0 {
				digestHex, fc, bc := checksum.Combine(state.children)
				delete(states, parent)
				finishDir(parent, digestHex, fc, bc)
			}
		}
		finishDir = func(relpath, digestHex string, fc, bc int64) {
			opts.Logger.Entry(relpath, digestHex)
			if relpath == "" {
				resultCh <- Result{DigestHex: digestHex, FileCount: fc, ByteCount: bc}
				return
			}
			parent, name := splitRelpath(relpath)
			applyChild(parent, checksum.ChildFromDir(name, relpath, digestHex, fc, bc))
		}

		for msg := range msgCh {
			switch msg.kind {
			case msgDirListed:
				state := getOrCreate(msg.relpath)
				state.remaining = msg.count
				if msg.count == 0 {
					digestHex, fc, bc := checksum.Combine(state.children)
					delete(states, msg.relpath)
					finishDir(msg.relpath, digestHex, fc, bc)
				}
			case msgChild:
				applyChild(msg.parent, msg.child)
			}
		}
	}()

	workers.Wait()
	close(msgCh)
	<-ownerDone

	if firstErr != nil {
		return Result{}, firstErr
	}
	return <-resultCh, nil
}
