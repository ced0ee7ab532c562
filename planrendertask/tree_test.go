package planrendertask

import (
	"testing"

	"github.com/kestrelrender/kestrel/gpubuf"
	"github.com/kestrelrender/kestrel/pipeline"
	"github.com/kestrelrender/kestrel/tuc"
)

func TestUpsertCoalescesSameVAO(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	pCfg := pipeline.Config{VertexShaderKey: "v"}
	var tCfg tuc.Config

	tree.Upsert(1, pCfg, tCfg, mesh, mesh, 6, gpubuf.Range{Offset: 0, Size: 16})
	tree.Upsert(2, pCfg, tCfg, mesh, mesh, 6, gpubuf.Range{Offset: 16, Size: 16})

	if tree.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tree.Len())
	}

	snap := tree.Snapshot()
	if snap.Len() != 2 {
		t.Fatalf("Snapshot().Len() = %d, want 2", snap.Len())
	}
}

func TestRemovePrunesEmptyVAO(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	pCfg := pipeline.Config{VertexShaderKey: "v"}
	var tCfg tuc.Config

	tree.Upsert(1, pCfg, tCfg, mesh, mesh, 6, gpubuf.Range{Offset: 0, Size: 16})
	tree.Remove(1)

	if tree.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tree.Len())
	}
	if tree.vaos.Len() != 0 {
		t.Fatalf("expected the now-empty VAO slot to be released, vaos.Len() = %d", tree.vaos.Len())
	}
}

func TestUpsertMovesInstanceBetweenVAOsOnPipelineChange(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	paramRange := gpubuf.Range{Offset: 0, Size: 16}
	var tCfg tuc.Config

	tree.Upsert(1, pipeline.Config{VertexShaderKey: "a"}, tCfg, mesh, mesh, 6, paramRange)
	if tree.vaos.Len() != 1 {
		t.Fatalf("expected 1 VAO, got %d", tree.vaos.Len())
	}

	tree.Upsert(1, pipeline.Config{VertexShaderKey: "b"}, tCfg, mesh, mesh, 6, paramRange)

	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (same owner, moved not duplicated)", tree.Len())
	}
	if tree.vaos.Len() != 1 {
		t.Fatalf("expected old VAO pruned and new one allocated, vaos.Len() = %d, want 1", tree.vaos.Len())
	}
}

func TestUpsertUpdatesParamRangeInPlace(t *testing.T) {
	tree := NewTree()
	mesh := gpubuf.Range{Offset: 0, Size: 64}
	pCfg := pipeline.Config{VertexShaderKey: "v"}
	var tCfg tuc.Config

	tree.Upsert(1, pCfg, tCfg, mesh, mesh, 6, gpubuf.Range{Offset: 0, Size: 16})
	tree.Upsert(1, pCfg, tCfg, mesh, mesh, 6, gpubuf.Range{Offset: 32, Size: 16})

	instHandle := tree.ownerToInstance[1]
	inst, ok := tree.instances.Get(instHandle)
	if !ok {
		t.Fatal("expected instance handle to remain valid")
	}
	if inst.paramRange.Offset != 32 {
		t.Fatalf("paramRange.Offset = %d, want 32", inst.paramRange.Offset)
	}
	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (update must not duplicate)", tree.Len())
	}
}
