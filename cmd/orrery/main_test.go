package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/storage"
)

func TestTraceDefaultFrames(t *testing.T) {
	out := filepath.Join(t.TempDir(), "trace.json")

	root := newRootCmd()
	root.SetArgs([]string{"trace", "Earth", "--graph=false", "--json", out, "--data", t.TempDir(), "--log-level", "error"})
	if err := root.Execute(); err != nil {
		t.Fatalf("trace with default flags failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var traces []storage.TraceExport
	if err := json.Unmarshal(data, &traces); err != nil {
		t.Fatal(err)
	}
	if len(traces) != 1 || traces[0].Frames != 600 {
		t.Errorf("expected one trace of 600 frames, got %+v", traces)
	}
}

func TestSnapshotFramesIndependent(t *testing.T) {
	root := newRootCmd()
	trace, _, err := root.Find([]string{"trace"})
	if err != nil {
		t.Fatal(err)
	}
	snapshot, _, err := root.Find([]string{"snapshot"})
	if err != nil {
		t.Fatal(err)
	}
	if got := trace.Flags().Lookup("frames").DefValue; got != "600" {
		t.Errorf("trace --frames default = %s", got)
	}
	if got := snapshot.Flags().Lookup("frames").DefValue; got != "0" {
		t.Errorf("snapshot --frames default = %s", got)
	}
	if frames != 600 || snapFrames != 0 {
		t.Errorf("registering snapshot changed trace frames: frames=%d snapFrames=%d", frames, snapFrames)
	}
}
