package engine

import "strconv"

// EntityID is opaque, stable within a match, and never reused.
type EntityID uint32

// EntityIDInvalid is the zero value, reserved to mean "no entity".
const EntityIDInvalid = EntityID(0)

func (id EntityID) String() string { return strconv.FormatUint(uint64(id), 16) }

func (id EntityID) MarshalText() ([]byte, error) {
	return id.AppendText(make([]byte, 0, 8)), nil
}

func (id EntityID) AppendText(buf []byte) []byte {
	return strconv.AppendUint(buf, uint64(id), 16)
}

func (id *EntityID) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 16, 32)
	if err != nil {
		return err
	}
	*id = EntityID(v)
	return nil
}

// idAllocator hands out EntityIDs that are dense, monotonically
// increasing, and never reused for the lifetime of a match.
type idAllocator struct {
	next EntityID
}

func (a *idAllocator) allocate() EntityID {
	a.next++
	if a.next == EntityIDInvalid {
		a.next++
	}
	return a.next
}
