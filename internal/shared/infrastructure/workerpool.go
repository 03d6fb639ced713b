package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task une unité de travail soumise au pool
type Task func(ctx context.Context) error

// ErrPoolStopped Submit après Wait ou annulation du contexte
var ErrPoolStopped = errors.New("worker pool is stopped")

// WorkerPool exécute des tâches indépendantes sur un nombre borné de goroutines.
// Toutes les erreurs sont conservées et restituées par Wait.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc

	sendMu sync.Mutex
	closed bool

	errMu sync.Mutex
	errs  []error
}

// NewWorkerPool crée un pool lié à ctx, au moins un worker
func NewWorkerPool(ctx context.Context, workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.tasks {
		if err := wp.ctx.Err(); err != nil {
			wp.record(err)
			continue
		}
		if err := task(wp.ctx); err != nil {
			wp.record(err)
		}
	}
}

func (wp *WorkerPool) record(err error) {
	wp.errMu.Lock()
	wp.errs = append(wp.errs, err)
	wp.errMu.Unlock()
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit soumet une tâche, bloque tant que la file est pleine
func (wp *WorkerPool) Submit(task Task) error {
	wp.sendMu.Lock()
	defer wp.sendMu.Unlock()

	if wp.closed {
		return ErrPoolStopped
	}
	if err := wp.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPoolStopped, err)
	}

	select {
	case <-wp.ctx.Done():
		return fmt.Errorf("%w: %v", ErrPoolStopped, wp.ctx.Err())
	case wp.tasks <- task:
		return nil
	}
}

// Wait ferme la file, attend la fin des workers et retourne les erreurs jointes
func (wp *WorkerPool) Wait() error {
	wp.sendMu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.tasks)
	}
	wp.sendMu.Unlock()

	wp.wg.Wait()
	wp.cancel()

	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	return errors.Join(wp.errs...)
}
