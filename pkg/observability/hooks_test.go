package observability

import (
	"context"
	"testing"
	"time"
)

type recordingExtractHooks struct {
	NoopExtractHooks
	starts     int
	completes  int
	unresolved []int
}

func (h *recordingExtractHooks) OnExtractStart(context.Context, string) { h.starts++ }
func (h *recordingExtractHooks) OnExtractComplete(context.Context, string, int, int, time.Duration, error) {
	h.completes++
}
func (h *recordingExtractHooks) OnUnresolved(_ context.Context, _ string, ids []int) {
	h.unresolved = ids
}

func TestSetExtractHooks(t *testing.T) {
	defer Reset()

	rec := &recordingExtractHooks{}
	SetExtractHooks(rec)

	ctx := context.Background()
	Extract().OnExtractStart(ctx, "map.vue")
	Extract().OnExtractComplete(ctx, "map.vue", 3, 2, time.Millisecond, nil)
	Extract().OnUnresolved(ctx, "map.vue", []int{7})

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("starts=%d completes=%d, want 1 and 1", rec.starts, rec.completes)
	}
	if len(rec.unresolved) != 1 || rec.unresolved[0] != 7 {
		t.Errorf("unresolved = %v, want [7]", rec.unresolved)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	rec := &recordingExtractHooks{}
	SetExtractHooks(rec)
	SetExtractHooks(nil)

	Extract().OnExtractStart(context.Background(), "x.vue")
	if rec.starts != 1 {
		t.Error("nil registration should not replace the current hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingExtractHooks{}
	SetExtractHooks(rec)
	Reset()

	Extract().OnExtractStart(context.Background(), "x.vue")
	if rec.starts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
