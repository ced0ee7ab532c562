package planrendertask

import (
	"fmt"

	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/rendertask"
	"github.com/kestrelrender/kestrel/tuc"
)

// vaoPayload is what a VAO-level pool slot holds: the mesh range plus the
// instance handles currently drawing it.
type vaoPayload struct {
	pCfg       pipeline.Config
	tCfg       tuc.Config
	vertex     gpubuf.Range
	index      gpubuf.Range
	indexCount uint32
	instances  []Handle
}

type instancePayload struct {
	paramRange gpubuf.Range
}

// Tree is the persistent counterpart to rendertask.Tree: VAO and instance
// nodes live in pools keyed by Handle, so Upsert/Remove touch one slot
// instead of rebuilding the whole structure. ownerToInstance maps a
// caller-supplied owner key (e.g. a game object ID) to its instance
// Handle, mirroring deoglCollideListManager's GetList/ReleaseList pairing
// one external owner to one pooled slot.
type Tree struct {
	vaos             *Pool[vaoPayload]
	instances        *Pool[instancePayload]
	ownerToInstance  map[uint64]Handle
	ownerToVAO       map[uint64]Handle
	vaoOrder         []Handle
	vaoKeyToHandle   map[vaoKey]Handle
}

type vaoKey struct {
	pipelineKey string
	tucKey      string
	vertexOff   uint64
	indexOff    uint64
}

// NewTree creates an empty persistent render task.
func NewTree() *Tree {
	return &Tree{
		vaos:            NewPool[vaoPayload](),
		instances:       NewPool[instancePayload](),
		ownerToInstance: make(map[uint64]Handle),
		ownerToVAO:      make(map[uint64]Handle),
		vaoKeyToHandle:  make(map[vaoKey]Handle),
	}
}

// Upsert adds or updates owner's instance. If owner already has an
// instance, its parameter range is updated in place; if the object's
// pipeline/TUC/mesh changed since the last Upsert, the instance moves to
// the (possibly newly pool-allocated) matching VAO node and the old node
// is pruned if it becomes empty.
func (t *Tree) Upsert(owner uint64, pCfg pipeline.Config, tCfg tuc.Config, vertex, index gpubuf.Range, indexCount uint32, paramRange gpubuf.Range) {
	vk := vaoKey{
		pipelineKey: pipelineKeyOf(pCfg),
		tucKey:      tCfg.Key(),
		vertexOff:   vertex.Offset,
		indexOff:    index.Offset,
	}

	vaoHandle, ok := t.vaoKeyToHandle[vk]
	if !ok {
		vaoHandle = t.vaos.Acquire()
		t.vaos.Set(vaoHandle, vaoPayload{pCfg: pCfg, tCfg: tCfg, vertex: vertex, index: index, indexCount: indexCount})
		t.vaoKeyToHandle[vk] = vaoHandle
		t.vaoOrder = append(t.vaoOrder, vaoHandle)
	}

	if instHandle, exists := t.ownerToInstance[owner]; exists {
		if oldVAOHandle, sameOwner := t.ownerToVAO[owner]; sameOwner && oldVAOHandle != vaoHandle {
			t.detachInstance(oldVAOHandle, instHandle)
			if old, ok := t.vaos.Get(oldVAOHandle); ok && len(old.instances) == 0 {
				t.pruneVAO(oldVAOHandle)
			}
			t.attachInstance(vaoHandle, instHandle)
			t.ownerToVAO[owner] = vaoHandle
		}
		t.instances.Set(instHandle, instancePayload{paramRange: paramRange})
		return
	}

	instHandle := t.instances.Acquire()
	t.instances.Set(instHandle, instancePayload{paramRange: paramRange})
	t.attachInstance(vaoHandle, instHandle)
	t.ownerToInstance[owner] = instHandle
	t.ownerToVAO[owner] = vaoHandle
}

// Remove drops owner's instance from the tree, releasing its pool slot and
// pruning the owning VAO node if it becomes empty.
func (t *Tree) Remove(owner uint64) {
	instHandle, ok := t.ownerToInstance[owner]
	if !ok {
		return
	}
	vaoHandle := t.ownerToVAO[owner]
	t.detachInstance(vaoHandle, instHandle)
	t.instances.Release(instHandle)
	delete(t.ownerToInstance, owner)
	delete(t.ownerToVAO, owner)

	if payload, ok := t.vaos.Get(vaoHandle); ok && len(payload.instances) == 0 {
		t.pruneVAO(vaoHandle)
	}
}

func (t *Tree) attachInstance(vaoHandle, instHandle Handle) {
	payload, _ := t.vaos.Get(vaoHandle)
	payload.instances = append(payload.instances, instHandle)
	t.vaos.Set(vaoHandle, payload)
}

func (t *Tree) detachInstance(vaoHandle, instHandle Handle) {
	payload, ok := t.vaos.Get(vaoHandle)
	if !ok {
		return
	}
	for i, h := range payload.instances {
		if h == instHandle {
			payload.instances = append(payload.instances[:i], payload.instances[i+1:]...)
			break
		}
	}
	t.vaos.Set(vaoHandle, payload)
}

func (t *Tree) pruneVAO(vaoHandle Handle) {
	payload, ok := t.vaos.Get(vaoHandle)
	if !ok {
		return
	}
	vk := vaoKey{
		pipelineKey: pipelineKeyOf(payload.pCfg),
		tucKey:      payload.tCfg.Key(),
		vertexOff:   payload.vertex.Offset,
		indexOff:    payload.index.Offset,
	}
	delete(t.vaoKeyToHandle, vk)
	t.vaos.Release(vaoHandle)
	for i, h := range t.vaoOrder {
		if h == vaoHandle {
			t.vaoOrder = append(t.vaoOrder[:i], t.vaoOrder[i+1:]...)
			break
		}
	}
}

// Len returns the total instance count across every live VAO node.
func (t *Tree) Len() int {
	return t.instances.Len()
}

// Snapshot materializes the persistent tree into a rendertask.Tree for one
// frame's Executor.Execute call, so the executor never needs to know
// whether it is drawing a rebuilt or a pool-backed tree.
func (t *Tree) Snapshot() *rendertask.Tree {
	out := rendertask.NewTree()
	for _, vaoHandle := range t.vaoOrder {
		payload, ok := t.vaos.Get(vaoHandle)
		if !ok || len(payload.instances) == 0 {
			continue
		}
		objects := make([]rendertask.RenderObject, 0, len(payload.instances))
		for _, instHandle := range payload.instances {
			inst, ok := t.instances.Get(instHandle)
			if !ok {
				continue
			}
			objects = append(objects, snapshotObject{vaoPayload: payload, paramRange: inst.paramRange})
		}
		rendertask.AddToRenderTask(out, objects, rendertask.AddOptions{})
	}
	return out
}

func pipelineKeyOf(cfg pipeline.Config) string {
	return fmt.Sprintf("%+v", cfg)
}

// snapshotObject adapts one persistent instance into a rendertask.RenderObject
// for Snapshot. All partition predicates are true/false-default since
// partitioning (solid/transparent/outline/decal/shadow) already happened
// when the object was Upserted into the appropriate Tree (one persistent
// tree per pass, matching how rendertask.Tree is one tree per pass).
type snapshotObject struct {
	vaoPayload
	paramRange gpubuf.Range
}

func (o snapshotObject) PipelineConfig() pipeline.Config                { return o.pCfg }
func (o snapshotObject) TUCConfig() tuc.Config                          { return o.tCfg }
func (o snapshotObject) Mesh() (gpubuf.Range, gpubuf.Range, uint32) {
	return o.vertex, o.index, o.indexCount
}
func (o snapshotObject) ParamRange() gpubuf.Range { return o.paramRange }
func (o snapshotObject) IsSolid() bool            { return true }
func (o snapshotObject) IsOutline() bool          { return false }
func (o snapshotObject) IsDecal() bool            { return false }
func (o snapshotObject) CastsNoShadow() bool      { return false }
