package observability

import (
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	h := NoopSystemHooks{}
	h.OnLoad("redis", time.Second, nil)
	h.OnLoad("redis", time.Second, errors.New("boom"))
	h.OnEmplace("redis", true)
	h.OnDestroy("redis", time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Systems().(NoopSystemHooks); !ok {
		t.Error("Systems() should return NoopSystemHooks by default")
	}

	custom := &testSystemHooks{}
	SetSystemHooks(custom)
	if Systems() != custom {
		t.Error("SetSystemHooks should set custom hooks")
	}

	Systems().OnEmplace("http", false)
	if custom.emplaced != 1 {
		t.Errorf("custom hooks received %d emplace events, want 1", custom.emplaced)
	}

	Reset()
	if _, ok := Systems().(NoopSystemHooks); !ok {
		t.Error("Reset() should restore NoopSystemHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSystemHooks{}
	SetSystemHooks(custom)

	SetSystemHooks(nil)

	if Systems() != custom {
		t.Error("SetSystemHooks(nil) should be ignored")
	}

	Reset()
}

type testSystemHooks struct {
	NoopSystemHooks
	emplaced int
}

func (h *testSystemHooks) OnEmplace(string, bool) { h.emplaced++ }
