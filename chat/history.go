// Package chat implements the text-chat side channel: a per-player
// spam/abuse score that fades over time, layered under
// moderation.Scan/Censor, and a broadcast surface a Match can plug into
// its existing Send callbacks, scoped to either all players or a team.
package chat

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/finnbear/moderation"
)

// recentSampleCount is how many recent message lengths feed the
// repetition/length-deviation spam heuristic.
const recentSampleCount = 7

// History is one player's fading moderation score: a total/inappropriate
// counter pair that decays exponentially with wall-clock time instead of
// being reset on a fixed schedule, plus a small ring buffer of recent
// message lengths used to flag repetition spam.
type History struct {
	total         float32
	inappropriate float32

	recentLengths      [recentSampleCount]uint8
	recentLengthsIndex int

	updatedMillis int64
}

// Submit scans message for moderation issues, censors it if necessary,
// updates the fading spam score, and reports whether it should be
// delivered at all (allowed) alongside the (possibly censored) text.
func (h *History) Submit(message string) (censored string, allowed bool) {
	h.total++
	result := moderation.Scan(message)
	inappropriate := result.Is(moderation.Inappropriate)
	severelyInappropriate := result.Is(moderation.Inappropriate & moderation.Severe)

	var censorAmount int
	if inappropriate {
		message, censorAmount = moderation.Censor(message, moderation.Inappropriate)
		h.inappropriate++
	}
	inappropriateFraction := h.inappropriate / h.total

	n := uint8(math32.MaxUint8)
	if len(message) < int(math32.MaxUint8) {
		n = uint8(len(message))
	}
	h.recentLengths[h.recentLengthsIndex] = n
	h.recentLengthsIndex = (h.recentLengthsIndex + 1) % len(h.recentLengths)

	var averageLength float32
	for _, length := range h.recentLengths {
		averageLength += float32(length)
	}
	averageLength /= float32(len(h.recentLengths))

	lengthDeviation := int(n) - int(averageLength)
	if lengthDeviation < 0 {
		lengthDeviation = -lengthDeviation
	}

	var lengthStdDev float32
	for _, length := range h.recentLengths {
		d := averageLength - float32(length)
		lengthStdDev += d * d
	}
	lengthStdDev /= float32(len(h.recentLengths))

	h.fade(inappropriateFraction)

	const repetitionThresholdTotal = 3
	frequencySpam := h.total >= 10
	inappropriateSpam := h.inappropriate > 2 && inappropriateFraction > 0.20
	repetitionSpam := int(h.total) > repetitionThresholdTotal && lengthStdDev < 3 && float32(lengthDeviation) < 3

	blocked := (inappropriate && censorAmount > 4) || severelyInappropriate || frequencySpam || inappropriateSpam || repetitionSpam
	return message, !blocked
}

// fade decays total/inappropriate by a rate chosen from how abusive this
// player's recent history has been — repeat offenders fade back to a
// clean slate far more slowly than an occasional false positive.
func (h *History) fade(inappropriateFraction float32) {
	now := time.Now().UnixMilli()
	if h.updatedMillis == 0 {
		h.updatedMillis = now
		return
	}
	seconds := (now - h.updatedMillis) / 1000
	if seconds <= 0 {
		return
	}

	fadeRate := float32(0.95)
	switch {
	case h.inappropriate > 5 && inappropriateFraction > 0.5:
		fadeRate = 0.999999
	case h.inappropriate > 4 && inappropriateFraction > 0.4:
		fadeRate = 0.99999
	case h.inappropriate > 3 && inappropriateFraction > 0.3:
		fadeRate = 0.9999
	case inappropriateFraction > 0.2:
		fadeRate = 0.999
	case inappropriateFraction > 0.1:
		fadeRate = 0.99
	}

	fade := math32.Pow(fadeRate, float32(seconds))
	h.total *= fade
	h.inappropriate *= fade
	h.updatedMillis = now
}
