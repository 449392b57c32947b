package strategy

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"zarr-checksum-gallery/internal/checksum"
	"zarr-checksum-gallery/internal/fsscan"
	"zarr-checksum-gallery/internal/jobqueue"
	"zarr-checksum-gallery/internal/tree"
)

// AsyncTree is the cooperative-task analog of PoolTree: opts.Workers
// goroutines draw directory relpaths from the same kind of work deque,
// but blocking filesystem calls (directory listing, file reads) are
// gated by a weighted semaphore sized to opts.Threads, standing in for a
// bounded runtime-thread pool underneath a larger number of logical
// tasks. opts.Threads == 1 therefore serializes all blocking I/O while
// still running opts.Workers goroutines.
//
// As in PoolTree, all goroutines run under one errgroup.Group, and the
// work deque is shut down as soon as any of them returns an error.
func AsyncTree(opts Options) (Result, *tree.Node, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}

	sem := semaphore.NewWeighted(int64(threads))
	ctx := context.Background()

	q := jobqueue.New([]string{""}, opts.Logger)
	entries := make(chan checksum.Entry)
	b := tree.New()

	g := new(errgroup.Group)

	var tasks sync.WaitGroup
	tasks.Add(workers)
	for i := 0; i < workers; i++ {
		taskNo := i
		g.Go(func() error {
			defer tasks.Done()
			opts.Logger.Trace("[async %d] starting worker", taskNo)
			for {
				relpath, ok := q.Pop()
				if !ok {
					opts.Logger.Trace("[async %d] ending worker", taskNo)
					return nil
				}
				opts.Logger.Trace("[async %d] popped %q from queue", taskNo, relpath)
				if err := asyncListAndHashDir(ctx, sem, opts, relpath, q.PushN, entries); err != nil {
					q.Shutdown()
					q.Done()
					return err
				}
				q.Done()
			}
		})
	}
	g.Go(func() error {
		tasks.Wait()
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

func asyncListAndHashDir(ctx context.Context, sem *semaphore.Weighted, opts Options, relpath string, pushDirs func([]string), out chan<- checksum.Entry) error {
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	listing, err := fsscan.List(fullPath(opts.RootPath, relpath))
	sem.Release(1)
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
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			digestHex, size, err := hashFile(e.Path)
			sem.Release(1)
			if err != nil {
				return err
			}
			opts.Logger.Entry(childRel, digestHex)
			opts.Logger.Trace("[async] sending %q to aggregator", childRel)
			out <- checksum.Entry{RelPath: childRel, DigestHex: digestHex, Size: size}
		}
	}
	pushDirs(subdirs)
	return nil
}
