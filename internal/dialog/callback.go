package dialog

import (
	"strconv"
	"strings"
)

// CallbackPayload is the structured form of a button press. It lives only for
// the duration of handling one event.
type CallbackPayload struct {
	Action   string
	TargetID int64
	Field    string
}

// decodePayload splits callback data into the registered action prefix and
// its tail. A numeric tail is an entity id; anything else is a field or code.
func decodePayload(prefix, data string) CallbackPayload {
	p := CallbackPayload{Action: strings.TrimSuffix(prefix, "_")}
	rest := strings.TrimPrefix(data, prefix)
	if rest == "" {
		return p
	}
	if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
		p.TargetID = id
	} else {
		p.Field = rest
	}
	return p
}
