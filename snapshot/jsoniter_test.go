package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stormline/arena/engine"
)

func TestMarshalStateUpdate_DeltaOnlyCarriesMaskedFields(t *testing.T) {
	u := &StateUpdate{
		Tick: 1,
		Deltas: []EntityDelta{{
			EntityID:   1,
			ChangeMask: engine.FieldPosition,
			Data: engine.EntitySnapshot{
				Position:    engine.Vec2{X: 5},
				Health:      50,
				HealthMax:   100,
				Resource:    10,
				ResourceMax: 20,
				Level:       3,
			},
		}},
	}

	raw, err := MarshalStateUpdate(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Deltas []map[string]interface{} `json:"deltas"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Deltas) != 1 {
		t.Fatalf("expected one delta, got %d", len(decoded.Deltas))
	}

	data, ok := decoded.Deltas[0]["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %#v", decoded.Deltas[0]["data"])
	}
	if _, ok := data["position"]; !ok {
		t.Fatalf("expected position in masked data, got %#v", data)
	}
	if _, ok := data["health"]; ok {
		t.Fatalf("expected health to be omitted from a position-only delta, got %#v", data)
	}
	if _, ok := data["level"]; ok {
		t.Fatalf("expected level to be omitted from a position-only delta, got %#v", data)
	}
}

func TestMarshalStateUpdate_RemovedDeltaCarriesNoData(t *testing.T) {
	u := &StateUpdate{
		Tick: 1,
		Deltas: []EntityDelta{{
			EntityID: 7,
			Removed:  true,
			Data:     engine.EntitySnapshot{Health: 100, HealthMax: 100},
		}},
	}

	raw, err := MarshalStateUpdate(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Deltas []map[string]interface{} `json:"deltas"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Deltas) != 1 {
		t.Fatalf("expected one delta, got %d", len(decoded.Deltas))
	}

	d := decoded.Deltas[0]
	if removed, _ := d["removed"].(bool); !removed {
		t.Fatalf("expected removed=true, got %#v", d["removed"])
	}
	if _, ok := d["data"]; ok {
		t.Fatalf("expected no data key on a removal delta, got %#v", d)
	}
	if _, ok := d["changeMask"]; ok {
		t.Fatalf("expected no changeMask key on a removal delta, got %#v", d)
	}
}
