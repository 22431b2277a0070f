package gatewayops

import (
	"errors"
	"testing"
)

func TestWithTrace_SetsAndClearsContext(t *testing.T) {
	gw := New("gwo_test_123")

	var seen string
	err := gw.WithTrace("test-operation", func(scope TraceScope) error {
		if scope.TraceID == "" {
			t.Error("expected a generated trace id")
		}
		if scope.Name != "test-operation" {
			t.Errorf("expected scope name test-operation, got %q", scope.Name)
		}
		if gw.CurrentTraceID() != scope.TraceID {
			t.Error("expected scope id installed as current context")
		}
		seen = scope.TraceID
		return nil
	})
	if err != nil {
		t.Fatalf("WithTrace: %v", err)
	}

	if seen == "" {
		t.Fatal("trace body never ran")
	}
	if gw.CurrentTraceID() != "" {
		t.Errorf("expected context cleared after scope, got %q", gw.CurrentTraceID())
	}
}

func TestWithTrace_NestedScopesRestore(t *testing.T) {
	gw := New("gwo_test_123")

	var outer, inner string
	err := gw.WithTrace("outer", func(a TraceScope) error {
		outer = a.TraceID
		err := gw.WithTrace("inner", func(b TraceScope) error {
			inner = b.TraceID
			if gw.CurrentTraceID() != b.TraceID {
				t.Error("expected inner id active inside nested scope")
			}
			return errors.New("inner failed")
		})
		if err == nil {
			t.Error("expected inner error propagated")
		}
		if gw.CurrentTraceID() != a.TraceID {
			t.Error("expected outer id restored after failed inner scope")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTrace: %v", err)
	}

	if outer == inner {
		t.Error("expected distinct trace ids for nested scopes")
	}
	if gw.CurrentTraceID() != "" {
		t.Errorf("expected context unset after outer scope, got %q", gw.CurrentTraceID())
	}
}

func TestWithTrace_RestoresAfterError(t *testing.T) {
	gw := New("gwo_test_123")

	wantErr := errors.New("boom")
	err := gw.WithTrace("failing", func(TraceScope) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected body error returned, got %v", err)
	}
	if gw.CurrentTraceID() != "" {
		t.Errorf("expected context cleared despite failure, got %q", gw.CurrentTraceID())
	}
}

func TestStartTrace_DeferStyle(t *testing.T) {
	gw := New("gwo_test_123")

	scope := gw.StartTrace("manual")
	if gw.CurrentTraceID() != scope.TraceID {
		t.Error("expected scope installed")
	}
	scope.End()
	if gw.CurrentTraceID() != "" {
		t.Error("expected scope removed after End")
	}
}

func TestStartTrace_UniqueIDs(t *testing.T) {
	gw := New("gwo_test_123")

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := gw.StartTrace("op")
		if seen[s.TraceID] {
			t.Fatalf("duplicate trace id %q", s.TraceID)
		}
		seen[s.TraceID] = true
		s.End()
	}
}
