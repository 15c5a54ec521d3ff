package concierge

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/stepedge/concierge/pkg/domain"
)

// EncodeSession serializes a session into the opaque context map callers
// echo back on the next turn.
func EncodeSession(sess *domain.Session) (map[string]any, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeSession rebuilds a session from an echoed context map. The map uses
// the session's JSON field names; unknown keys are ignored so older clients
// keep working. A step that outruns the collected preferences is rewound to
// the furthest stage they support.
func DecodeSession(raw map[string]any) (*domain.Session, error) {
	var sess domain.Session
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &sess,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode session context: %w", err)
	}
	if sess.Step == "" {
		sess.Step = domain.StepCategory
	}
	if !sess.Step.Known() {
		return nil, fmt.Errorf("unknown step %q in session context", sess.Step)
	}
	// The map is client-supplied: a step past the preferences that feed it
	// is rewound rather than trusted.
	sess.ClampStep()
	return &sess, nil
}
