package main

import (
	"encoding/json"
	"fmt"

	"github.com/stormline/arena/chat"
	"github.com/stormline/arena/input"
	"github.com/stormline/arena/match"
	"github.com/stormline/arena/snapshot"
)

// envelope is the {type, data} wire wrapper every outbound message is sent
// in, so a client can dispatch on Type without guessing from shape. A
// direct type switch is enough since this host has a small, fixed
// outbound set.
type envelope struct {
	Type string          `json:"type"`
	Data interface{}     `json:"data"`
}

func encodeOutbound(message interface{}) ([]byte, error) {
	var typ string
	var data interface{} = message

	switch m := message.(type) {
	case match.GameStart:
		typ = "gameStart"
	case match.GameEnd:
		typ = "gameEnd"
	case match.Error:
		typ = "error"
	case snapshot.StateUpdate:
		typ = "stateUpdate"
		raw, err := snapshot.MarshalStateUpdate(&m)
		if err != nil {
			return nil, err
		}
		data = json.RawMessage(raw)
	case snapshot.FullStateSnapshot:
		typ = "fullStateSnapshot"
		raw, err := snapshot.MarshalFullStateSnapshot(&m)
		if err != nil {
			return nil, err
		}
		data = json.RawMessage(raw)
	case chat.Message:
		typ = "chat"
	default:
		return nil, fmt.Errorf("arenahost: unregistered outbound type %T", message)
	}
	return json.Marshal(envelope{Type: typ, Data: data})
}

// inboundEnvelope is the shape every client->server frame arrives in.
// Data is decoded lazily into the concrete payload once Type identifies
// which one applies.
type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinRequest struct {
	ChampionTag string `json:"championTag"`
}

type chatRequest struct {
	Scope chat.Scope `json:"scope"`
	Text  string     `json:"text"`
}

type eventAckRequest struct {
	LastEventID uint64 `json:"lastEventId"`
}

func decodeInbound(raw []byte) (string, json.RawMessage, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, err
	}
	return env.Type, env.Data, nil
}

func decodeClientInput(data json.RawMessage) (input.ClientInput, error) {
	var in input.ClientInput
	err := json.Unmarshal(data, &in)
	return in, err
}
