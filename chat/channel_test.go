package chat

import (
	"strings"
	"testing"

	"github.com/stormline/arena/engine"
)

func TestChannel_PostAllowsOrdinaryMessage(t *testing.T) {
	c := NewChannel()
	msg, ok := c.Post(1, engine.SideA, ScopeAll, "nice shot")
	if !ok {
		t.Fatalf("expected ordinary message to be allowed")
	}
	if msg.Text != "nice shot" || msg.Sender != 1 || msg.Scope != ScopeAll {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestChannel_BlocksFrequencySpam(t *testing.T) {
	c := NewChannel()
	var lastOK bool
	for i := 0; i < 15; i++ {
		_, lastOK = c.Post(1, engine.SideA, ScopeAll, "hello there teammate")
	}
	if lastOK {
		t.Fatalf("expected rapid repeated posting to eventually be blocked as spam")
	}
}

func TestChannel_ForgetResetsHistory(t *testing.T) {
	c := NewChannel()
	for i := 0; i < 15; i++ {
		c.Post(1, engine.SideA, ScopeAll, "hello there teammate")
	}
	c.Forget(1)
	_, ok := c.Post(1, engine.SideA, ScopeAll, "fresh start")
	if !ok {
		t.Fatalf("expected a forgotten player's history to reset")
	}
}

func TestHistory_SubmitReturnsText(t *testing.T) {
	h := &History{}
	text, _ := h.Submit(strings.Repeat("a", 5))
	if text == "" {
		t.Fatalf("expected non-empty censored output")
	}
}
