package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/akyairhashvil/kamreen/internal/util"
)

type persistedCounter struct {
	ElapsedSeconds     int    `json:"elapsedSeconds"`
	IsRunning          bool   `json:"isRunning"`
	IsEmpty            bool   `json:"isEmpty"`
	FilterClicks       int    `json:"filterClicks"`
	LastPauseTimestamp *int64 `json:"lastPauseTimestamp"`
}

type persistedSnapshot struct {
	GlobalElapsed     int                `json:"globalElapsed"`
	GlobalRunning     bool               `json:"globalRunning"`
	Counters          []persistedCounter `json:"counters"`
	FilterStartEvents int                `json:"filterStartEvents"`
}

// EncodeState serializes the durable state as the persisted JSON snapshot.
func EncodeState(st models.EngineState) ([]byte, error) {
	out := persistedSnapshot{
		GlobalElapsed:     st.Global.ElapsedSeconds,
		GlobalRunning:     st.Global.Running,
		Counters:          make([]persistedCounter, len(st.Counters)),
		FilterStartEvents: st.FilterStartEvents,
	}
	for i, c := range st.Counters {
		pc := persistedCounter{
			ElapsedSeconds: c.ElapsedSeconds,
			IsRunning:      c.Running,
			IsEmpty:        c.Empty,
			FilterClicks:   c.FilterClicks,
		}
		if c.LastPausedAt != nil {
			pc.LastPauseTimestamp = util.Ptr(c.LastPausedAt.UnixMilli())
		}
		out.Counters[i] = pc
	}
	return json.Marshal(out)
}

// FieldIssue describes a persisted field that was rejected during decoding.
type FieldIssue struct {
	Field  string
	Reason string
}

func (f FieldIssue) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Reason)
}

// DecodeState applies every well-formed field of data over the initial state.
// Missing or invalid fields keep their defaults and are reported as issues;
// a blob that is not a JSON object yields the initial state.
func DecodeState(data []byte, intervalSeconds int) (models.EngineState, []FieldIssue) {
	st := InitialState()
	var issues []FieldIssue

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil || root == nil {
		reason := "not a JSON object"
		if err != nil {
			reason = err.Error()
		}
		return st, []FieldIssue{{Field: "snapshot", Reason: reason}}
	}

	if v, ok, issue := decodeCount(root, "globalElapsed"); issue != nil {
		issues = append(issues, *issue)
	} else if ok {
		st.Global.ElapsedSeconds = util.Clamp(v, 0, intervalSeconds)
	}
	if v, ok, issue := decodeBool(root, "globalRunning"); issue != nil {
		issues = append(issues, *issue)
	} else if ok {
		st.Global.Running = v
	}
	if v, ok, issue := decodeCount(root, "filterStartEvents"); issue != nil {
		issues = append(issues, *issue)
	} else if ok {
		st.FilterStartEvents = v
	}

	if raw, ok := root["counters"]; ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			issues = append(issues, FieldIssue{Field: "counters", Reason: "not an array"})
		} else {
			for i, entry := range entries {
				if i >= config.CounterCount {
					break
				}
				var c models.Counter
				c, issues = decodeCounter(entry, st.Counters[i], i, issues)
				st.Counters[i] = c
			}
		}
	}
	return st, issues
}

func decodeCounter(raw json.RawMessage, def models.Counter, idx int, issues []FieldIssue) (models.Counter, []FieldIssue) {
	prefix := fmt.Sprintf("counters[%d].", idx)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return def, append(issues, FieldIssue{Field: fmt.Sprintf("counters[%d]", idx), Reason: "not an object"})
	}

	c := def
	if v, ok, issue := decodeCount(fields, "elapsedSeconds"); issue != nil {
		issues = append(issues, prefixed(prefix, issue))
	} else if ok {
		c.ElapsedSeconds = v
	}
	if v, ok, issue := decodeBool(fields, "isRunning"); issue != nil {
		issues = append(issues, prefixed(prefix, issue))
	} else if ok {
		c.Running = v
	}
	if v, ok, issue := decodeBool(fields, "isEmpty"); issue != nil {
		issues = append(issues, prefixed(prefix, issue))
	} else if ok {
		c.Empty = v
	}
	if v, ok, issue := decodeCount(fields, "filterClicks"); issue != nil {
		issues = append(issues, prefixed(prefix, issue))
	} else if ok {
		c.FilterClicks = v
	}
	if ts, ok, issue := decodeTimestamp(fields, "lastPauseTimestamp"); issue != nil {
		issues = append(issues, prefixed(prefix, issue))
	} else if ok {
		c.LastPausedAt = ts
	}

	// A running counter, or one with time on it, is never empty.
	if c.Running || c.ElapsedSeconds > 0 {
		c.Empty = false
	}
	if c.Running || c.Empty {
		c.LastPausedAt = nil
	}
	return c, issues
}

func prefixed(prefix string, issue *FieldIssue) FieldIssue {
	return FieldIssue{Field: prefix + issue.Field, Reason: issue.Reason}
}

func decodeCount(fields map[string]json.RawMessage, key string) (int, bool, *FieldIssue) {
	raw, ok := fields[key]
	if !ok {
		return 0, false, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false, &FieldIssue{Field: key, Reason: "not a number"}
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false, &FieldIssue{Field: key, Reason: "not a non-negative integer"}
	}
	return int(f), true, nil
}

func decodeBool(fields map[string]json.RawMessage, key string) (bool, bool, *FieldIssue) {
	raw, ok := fields[key]
	if !ok {
		return false, false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil || string(raw) == "null" {
		return false, false, &FieldIssue{Field: key, Reason: "not a boolean"}
	}
	return b, true, nil
}

func decodeTimestamp(fields map[string]json.RawMessage, key string) (*time.Time, bool, *FieldIssue) {
	raw, ok := fields[key]
	if !ok {
		return nil, false, nil
	}
	if string(raw) == "null" {
		return nil, true, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, false, &FieldIssue{Field: key, Reason: "not a timestamp"}
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt64/2 {
		return nil, false, &FieldIssue{Field: key, Reason: "not a non-negative integer"}
	}
	return util.Ptr(time.UnixMilli(int64(f))), true, nil
}
