package trainer

import (
	"runtime"
	"sort"
	"sync"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/optics"
	"github.com/df07/go-lensmaker/pkg/scene"
)

// TrainTask represents one scene to train
type TrainTask struct {
	TaskID  int // For deterministic ordering
	SceneID string
}

// TrainResult contains the trained scene or the error that stopped it
type TrainResult struct {
	TaskID int
	Scene  *scene.Scene
	Result Result
	Error  error
}

// WorkerPool trains independent scenes in parallel. Each task builds its own
// scene, so workers never share coefficient storage.
type WorkerPool struct {
	taskQueue   chan TrainTask
	resultQueue chan TrainResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual training tasks
type Worker struct {
	ID          int
	config      Config
	logger      core.Logger
	taskQueue   chan TrainTask
	resultQueue chan TrainResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
// and room for maxTasks queued tasks
func NewWorkerPool(config Config, logger core.Logger, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TrainTask, maxTasks),
		resultQueue: make(chan TrainResult, maxTasks),
		numWorkers:  numWorkers,
	}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			config:      config,
			logger:      logger,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}
	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a training task to the worker pool
func (wp *WorkerPool) SubmitTask(task TrainTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed training result
func (wp *WorkerPool) GetResult() (TrainResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		result := TrainResult{TaskID: task.TaskID}
		s, err := scene.NewScene(task.SceneID)
		if err != nil {
			result.Error = err
			w.resultQueue <- result
			continue
		}

		config := w.config
		if config.Sampling == (optics.Sampling{}) {
			config.Sampling = s.Sampling
		}
		result.Scene = s
		result.Result, result.Error = Run(s.System, config, w.logger)
		w.resultQueue <- result
	}
}

// TrainScenes trains every scene in parallel and returns the results in the
// order of ids
func TrainScenes(ids []string, config Config, logger core.Logger) []TrainResult {
	pool := NewWorkerPool(config, logger, config.NumWorkers, len(ids))
	pool.Start()
	for i, id := range ids {
		pool.SubmitTask(TrainTask{TaskID: i, SceneID: id})
	}
	pool.Stop()

	results := make([]TrainResult, 0, len(ids))
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].TaskID < results[j].TaskID
	})
	return results
}
