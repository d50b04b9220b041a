package snapshot

import (
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"

	"github.com/stormline/arena/engine"
)

// json is the wire codec for StateUpdate/FullStateSnapshot, configured
// with compact custom encoders: quoted-hex IDs instead of decimal
// (smaller and unambiguous as a JSON map key), lossy float32 angles
// instead of the full fixed-point representation, and ticks expressed as
// seconds so the client never has to know the server's tick rate.
var json = func() jsoniter.API {
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(engine.EntityID(0)).String(), encodeEntityID, emptyEntityID)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(engine.Angle(0)).String(), encodeAngle, emptyAngle)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(engine.Ticks(0)).String(), encodeTicks, emptyTicks)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(EntityDelta{}).String(), encodeEntityDelta, neverEmpty)

	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(engine.Angle(0)).String(), decodeAngle)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(engine.Ticks(0)).String(), decodeTicks)

	return jsoniter.Config{
		MarshalFloatWith6Digits: true,
		EscapeHTML:              false,
		SortMapKeys:              true,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:            true,
	}.Froze()
}()

func encodeEntityID(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	id := *(*engine.EntityID)(ptr)
	stream.SetBuffer(append(id.AppendText(append(stream.Buffer(), '"')), '"'))
}

func emptyEntityID(ptr unsafe.Pointer) bool {
	return *(*engine.EntityID)(ptr) == engine.EntityIDInvalid
}

func encodeAngle(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	angle := *(*engine.Angle)(ptr)
	stream.WriteFloat32Lossy(angle.Float())
}

func emptyAngle(ptr unsafe.Pointer) bool {
	return *(*engine.Angle)(ptr) == 0
}

func decodeAngle(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	*(*engine.Angle)(ptr) = engine.ToAngle(iter.ReadFloat32())
}

func encodeTicks(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	ticks := *(*engine.Ticks)(ptr)
	stream.WriteFloat32Lossy(ticks.Float())
}

func emptyTicks(ptr unsafe.Pointer) bool {
	return *(*engine.Ticks)(ptr) == 0
}

func decodeTicks(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	*(*engine.Ticks)(ptr) = engine.SecondsToTicks(iter.ReadFloat32())
}

func neverEmpty(unsafe.Pointer) bool { return false }

// encodeEntityDelta writes only the field families named by ChangeMask,
// so a position-only delta never carries health/resource/items/etc over
// the wire. A removed entity carries no data or changeMask at all.
func encodeEntityDelta(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	d := (*EntityDelta)(ptr)

	stream.WriteObjectStart()
	stream.WriteObjectField("entityId")
	stream.WriteVal(d.EntityID)

	if d.Removed {
		stream.WriteMore()
		stream.WriteObjectField("removed")
		stream.WriteTrue()
		stream.WriteObjectEnd()
		return
	}

	stream.WriteMore()
	stream.WriteObjectField("changeMask")
	stream.WriteUint16(uint16(d.ChangeMask))

	stream.WriteMore()
	stream.WriteObjectField("data")
	writeMaskedSnapshot(d.Data, d.ChangeMask, stream)

	stream.WriteObjectEnd()
}

// writeMaskedSnapshot writes the subset of snap named by mask as a sparse
// JSON object, one key per set FieldFamily bit.
func writeMaskedSnapshot(snap engine.EntitySnapshot, mask engine.FieldFamily, stream *jsoniter.Stream) {
	wrote := false
	field := func(name string, val interface{}) {
		if wrote {
			stream.WriteMore()
		}
		wrote = true
		stream.WriteObjectField(name)
		stream.WriteVal(val)
	}

	stream.WriteObjectStart()
	if mask&engine.FieldPosition != 0 {
		field("position", snap.Position)
		field("direction", snap.Direction)
	}
	if mask&engine.FieldHealth != 0 {
		field("health", snap.Health)
		field("healthMax", snap.HealthMax)
	}
	if mask&engine.FieldResource != 0 {
		field("resource", snap.Resource)
		field("resourceMax", snap.ResourceMax)
	}
	if mask&engine.FieldLevel != 0 {
		field("level", snap.Level)
		field("killCount", snap.KillCount)
		field("assistCount", snap.AssistCount)
	}
	if mask&engine.FieldEffects != 0 {
		field("effects", snap.Effects)
	}
	if mask&engine.FieldAbilities != 0 {
		field("abilities", snap.Abilities)
	}
	if mask&engine.FieldItems != 0 {
		field("items", snap.Items)
	}
	if mask&engine.FieldTarget != 0 {
		field("targetEntityId", snap.TargetEntityID)
	}
	if mask&engine.FieldState != 0 {
		field("state", uint16(snap.State))
	}
	if mask&engine.FieldTrinket != 0 {
		field("trinket", snap.Trinket)
	}
	if mask&engine.FieldGold != 0 {
		field("gold", snap.Gold)
	}
	if mask&engine.FieldShields != 0 {
		field("shield", snap.Shield)
	}
	if mask&engine.FieldPassive != 0 {
		field("passive", snap.Passive)
	}
	stream.WriteObjectEnd()
}

// MarshalStateUpdate encodes u using the compact codec above.
func MarshalStateUpdate(u *StateUpdate) ([]byte, error) { return json.Marshal(u) }

// MarshalFullStateSnapshot encodes s using the compact codec above.
func MarshalFullStateSnapshot(s *FullStateSnapshot) ([]byte, error) { return json.Marshal(s) }
