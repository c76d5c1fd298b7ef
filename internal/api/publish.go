package api

import "encoding/json"

// publishJSON emits a listing lifecycle event when a bus is configured.
// Publishing is fire-and-forget: a missing bus or marshal failure never
// affects the request outcome.
func (a *API) publishJSON(subject string, payload map[string]any) {
	if a.store.Bus == nil || subject == "" {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = a.store.Bus.Publish(subject, data)
}
