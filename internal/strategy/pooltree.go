package strategy

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/fsscan"
	"zarr-checksum-gallery/internal/jobqueue"
	"zarr-checksum-gallery/internal/tree"
)

// PoolTree runs a pool of opts.Threads worker goroutines over a shared
// work deque of directory relpaths. Workers list directories, push
// discovered subdirectories back onto the deque, hash regular files, and
// send the resulting entries to a single aggregator goroutine that owns
// the tree builder. The deque's in-flight job counter is the termination
// signal: a directory's job isn't done until it has been listed and
// every one of its immediate files has been hashed and sent.
//
// Workers and the aggregator run under one errgroup.Group so the first
// fatal error any of them returns is the one PoolTree reports, and the
// work deque is shut down immediately to drain the rest without further
// output.
func PoolTree(opts Options) (Result, *tree.Node, error) {
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}

	q := jobqueue.New([]string{""}, opts.Logger)
	entries := make(chan checksum.Entry)
	b := tree.New()

	g := new(errgroup.Group)

	var producers sync.WaitGroup
	producers.Add(threads)
	for i := 0; i < threads; i++ {
		workerNo := i
		g.Go(func() error {
			defer producers.Done()
			opts.Logger.Trace("[pool %d] starting worker", workerNo)
			for {
				relpath, ok := q.Pop()
				if !ok {
					opts.Logger.Trace("[pool %d] ending worker", workerNo)
					return nil
				}
				opts.Logger.Trace("[pool %d] popped %q from queue", workerNo, relpath)
				if err := listAndHashDir(opts, relpath, q.PushN, entries); err != nil {
					q.Shutdown()
					q.Done()
					return err
				}
				q.Done()
			}
		})
	}
	g.Go(func() error {
		producers.Wait()
		close(entries)
		return nil
	})
	g.Go(func() error {
		var insertErr error
		for e := range entries {
			if insertErr != nil {
				continue // drain: a worker may still be blocked sending on entries
			}
			if err := b.Insert(e); err != nil {
				insertErr = err
				q.Shutdown()
			}
		}
		return insertErr
	})

	if err := g.Wait(); err != nil {
		return Result{}, nil, err
	}

	digestHex, fc, bc := b.Finalize(opts.Logger)
	return Result{DigestHex: digestHex, FileCount: fc, ByteCount: bc}, b.Root(), nil
}

// listAndHashDir lists one directory, pushes every discovered
// subdirectory onto the deque in one pushDirs call, hashes regular
// files, and sends the resulting entries downstream. PoolTree calls it
// directly; AsyncTree uses asyncListAndHashDir, a copy of the same steps
// with its blocking calls gated by a semaphore.
func listAndHashDir(opts Options, relpath string, pushDirs func([]string), out chan<- checksum.Entry) error {
	listing, err := fsscan.List(fullPath(opts.RootPath, relpath))
	if err != nil {
		return err
	}
	var subdirs []string
	for _, e := range listing {
		if opts.excluded(e.Name) {
			continue
		}
		childRel, err := joinRelpath(relpath, e.Name)
		if err != nil {
			return err
		}
		switch e.Kind {
		case fsscan.KindDir:
			subdirs = append(subdirs, childRel)
		case fsscan.KindFile:
			digestHex, size, err := hashFile(e.Path)
			if err != nil {
				return err
			}
			opts.Logger.Entry(childRel, digestHex)
			opts.Logger.Trace("[pool] sending %q to aggregator", childRel)
			out <- checksum.Entry{RelPath: childRel, DigestHex: digestHex, Size: size}
		}
	}
	pushDirs(subdirs)
	return nil
}
