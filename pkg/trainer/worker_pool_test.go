package trainer

import (
	"testing"
)

func TestTrainScenes(t *testing.T) {
	config := Config{Iterations: 10, Method: "bfgs", NumWorkers: 2}
	ids := []string{"parabolic-mirror", "not-a-scene", "circular-mirror"}

	results := TrainScenes(ids, config, &recordingLogger{})
	if len(results) != len(ids) {
		t.Fatalf("Expected %d results, got %d", len(ids), len(results))
	}
	for i, r := range results {
		if r.TaskID != i {
			t.Errorf("Expected results in submission order, got task %d at %d", r.TaskID, i)
		}
	}

	if results[1].Error == nil {
		t.Error("Expected error for an unknown scene")
	}
	for _, i := range []int{0, 2} {
		r := results[i]
		if r.Error != nil {
			t.Errorf("%s: %v", ids[i], r.Error)
			continue
		}
		if r.Scene.Info.ID != ids[i] {
			t.Errorf("Expected scene %s, got %s", ids[i], r.Scene.Info.ID)
		}
		if r.Result.FinalLoss >= r.Result.InitialLoss {
			t.Errorf("%s: loss did not decrease (%g -> %g)", ids[i], r.Result.InitialLoss, r.Result.FinalLoss)
		}
	}
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(DefaultConfig(), nil, 0, 1)
	if pool.GetNumWorkers() <= 0 {
		t.Errorf("Expected at least one worker, got %d", pool.GetNumWorkers())
	}
	pool.Start()
	pool.Stop()
	if _, ok := pool.GetResult(); ok {
		t.Error("Expected no results from an idle pool")
	}
}
