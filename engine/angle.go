package engine

import (
	"encoding/json"
	"fmt"

	"github.com/chewxy/math32"
)

// Pi is the fixed-point representation of math.Pi radians.
const Pi Angle = 32768

// Angle is a 2-byte fixed-point angle, matching the wire precision clients
// need for smooth interpolation without the bandwidth of a float32.
type Angle uint16

func ToAngle(radians float32) Angle {
	return Angle(radians * (float32(Pi) / math32.Pi))
}

func (a Angle) Float() float32 {
	return float32(int16(a)) * (math32.Pi * 2 / 65536)
}

func (a Angle) Vec2() Vec2 {
	f := a.Float()
	return Vec2{X: math32.Cos(f), Y: math32.Sin(f)}
}

func (a Angle) ClampMagnitude(m Angle) Angle {
	if int16(a) < -int16(m) {
		return -m
	}
	if int16(a) > int16(m) {
		return m
	}
	return a
}

// Diff returns the signed angular distance from o to a, wrapped to [-Pi, Pi).
func (a Angle) Diff(o Angle) Angle { return a - o }

func (a Angle) Lerp(o Angle, t float32) Angle {
	return a + ToAngle(o.Diff(a).Float()*t)
}

func (a Angle) Abs() float32 { return math32.Abs(a.Float()) }

func (a Angle) Inv() Angle { return a + Pi }

func (a Angle) String() string {
	return fmt.Sprintf("%.01f deg", a.Float()*(180/math32.Pi))
}

func (a Angle) MarshalJSON() ([]byte, error) { return json.Marshal(a.Float()) }

func (a *Angle) UnmarshalJSON(b []byte) error {
	var f float32
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = ToAngle(f)
	return nil
}
