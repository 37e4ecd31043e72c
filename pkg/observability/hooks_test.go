package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSaveHooks{}
	s.OnSave(ctx, "teeplots/viz=lineplot+ext=.png", ".png", 1024, time.Millisecond)
	s.OnSkip(ctx, ".svg", "disabled")
	s.OnCollision(ctx, "teeplots/viz=lineplot+ext=.png", "warn", 1)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Save().(NoopSaveHooks); !ok {
		t.Error("Save() should return NoopSaveHooks by default")
	}

	custom := &testSaveHooks{}
	SetSaveHooks(custom)
	if Save() != custom {
		t.Error("SetSaveHooks should set custom hooks")
	}

	Reset()
	if _, ok := Save().(NoopSaveHooks); !ok {
		t.Error("Reset() should restore NoopSaveHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSaveHooks{}
	SetSaveHooks(custom)

	SetSaveHooks(nil)

	if Save() != custom {
		t.Error("SetSaveHooks(nil) should be ignored")
	}

	Reset()
}

type testSaveHooks struct{ NoopSaveHooks }
