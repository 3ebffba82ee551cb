package shutdown

import (
	"testing"

	"chroma-billboard/internal/logger"
)

type recorder struct {
	order *[]string
	name  string
}

func (r *recorder) Shutdown() {
	*r.order = append(*r.order, r.name)
}

func TestShutdownRunsInReverseOrder(t *testing.T) {
	m := NewManager(logger.Nop{})

	var order []string
	m.Register(&recorder{order: &order, name: "first"})
	m.Register(&recorder{order: &order, name: "second"})
	m.Register(&recorder{order: &order, name: "third"})

	m.Shutdown()

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("shutdown ran %d components, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	m := NewManager(logger.Nop{})

	var order []string
	m.Register(&recorder{order: &order, name: "only"})

	m.Shutdown()
	m.Shutdown()

	if len(order) != 1 {
		t.Errorf("component shut down %d times, want 1", len(order))
	}

	select {
	case <-m.Done():
	default:
		t.Error("Done channel not closed after Shutdown")
	}
}
