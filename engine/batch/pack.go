package batch

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sketch/common"
)

// packChunk is the number of instances or draws marshaled by one pool task.
const packChunk = 1024

// Buffers holds the byte contents of every GPU buffer a RenderState uploads to.
type Buffers struct {
	Vertices  []byte
	Indices   []byte
	Instances []byte
	Indirect  []byte
	Camera    []byte
}

// Pack serializes a RenderState into upload-ready byte buffers.
// Instances and draws are marshaled in chunks on the pool; each task writes a disjoint range,
// and Pack returns once all of them have finished. A nil pool packs on the calling goroutine.
//
// Parameters:
//   - state: the render state to serialize
//   - pool: worker pool the marshaling tasks are submitted to, or nil
//
// Returns:
//   - *Buffers: the serialized buffers; buffers for empty arrays are nil
func Pack(state *RenderState, pool worker.DynamicWorkerPool) *Buffers {
	var inst GPUInstance
	var draw GPUDrawIndexedIndirect

	b := &Buffers{
		Vertices: clone(common.SliceToBytes(state.Vertices)),
		Indices:  clone(common.SliceToBytes(state.Indices)),
		Camera:   state.Camera.Marshal(),
	}
	if n := len(state.Instances); n > 0 {
		b.Instances = make([]byte, n*inst.Size())
	}
	if n := len(state.Draws); n > 0 {
		b.Indirect = make([]byte, n*draw.Size())
	}

	var jobs []func()
	for lo := 0; lo < len(state.Instances); lo += packChunk {
		hi := min(lo+packChunk, len(state.Instances))
		jobs = append(jobs, func() {
			for i := lo; i < hi; i++ {
				state.Instances[i].MarshalTo(b.Instances[i*inst.Size():])
			}
		})
	}
	for lo := 0; lo < len(state.Draws); lo += packChunk {
		hi := min(lo+packChunk, len(state.Draws))
		jobs = append(jobs, func() {
			for i := lo; i < hi; i++ {
				state.Draws[i].MarshalTo(b.Indirect[i*draw.Size():])
			}
		})
	}

	if pool == nil {
		for _, job := range jobs {
			job()
		}
		return b
	}

	var wg sync.WaitGroup
	for id, job := range jobs {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				job()
				return nil, nil
			},
		})
	}
	wg.Wait()

	return b
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
