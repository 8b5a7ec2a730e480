// Package response accumulates a participant's in-progress answers keyed by
// field id. A Collector belongs to exactly one filling session; it is created
// empty when the renderer mounts, mutated on every input event, and discarded
// after a successful submission. It knows nothing about step structure — the
// validator resolves steps against a snapshot of the collected map.
package response

import "encoding/json"

// Collector owns one session's answer map.
type Collector struct {
	values map[string]Value
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{values: make(map[string]Value)}
}

// Set records the answer for a field, replacing any previous one.
func (c *Collector) Set(fieldID string, value Value) {
	if c == nil || fieldID == "" {
		return
	}
	if c.values == nil {
		c.values = make(map[string]Value)
	}
	c.values[fieldID] = value
}

// Get returns the recorded answer and whether one exists.
func (c *Collector) Get(fieldID string) (Value, bool) {
	if c == nil || c.values == nil {
		return Value{}, false
	}
	value, ok := c.values[fieldID]
	return value, ok
}

// Clear drops the answer for a field.
func (c *Collector) Clear(fieldID string) {
	if c == nil {
		return
	}
	delete(c.values, fieldID)
}

// Reset drops every answer, returning the collector to its mounted state.
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.values = make(map[string]Value)
}

// Len reports the number of answered fields.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// Snapshot returns a copy of the answer map for validation or submission.
func (c *Collector) Snapshot() Snapshot {
	if c == nil || len(c.values) == 0 {
		return Snapshot{}
	}
	out := make(Snapshot, len(c.values))
	for id, value := range c.values {
		out[id] = value
	}
	return out
}

// Snapshot is an immutable-by-convention view of collected answers.
type Snapshot map[string]Value

// Get returns the answer for a field and whether one exists.
func (s Snapshot) Get(fieldID string) (Value, bool) {
	value, ok := s[fieldID]
	return value, ok
}

// MarshalJSON serialises the snapshot as the submission payload.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Value(s))
}
