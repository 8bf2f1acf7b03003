package observability

import (
	"encoding/json"
	"log"
	"time"
)

// Fields carries structured event payload data.
type Fields map[string]interface{}

func Info(event string, fields Fields) {
	logEvent("info", event, fields)
}

func Warn(event string, fields Fields) {
	logEvent("warn", event, fields)
}

func Error(event string, fields Fields, err error) {
	payload := cloneFields(fields)
	if err != nil {
		payload["error"] = err.Error()
	}
	logEvent("error", event, payload)
}

func logEvent(level, event string, fields Fields) {
	payload := cloneFields(fields)
	payload["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	payload["level"] = level
	payload["event"] = event
	raw, err := json.Marshal(payload)
	if err != nil {
		fallback := Fields{
			"ts":    time.Now().UTC().Format(time.RFC3339Nano),
			"level": "error",
			"event": "log.marshal_failed",
			"error": err.Error(),
		}
		if fields != nil {
			fallback["event_payload"] = fields
		}
		fallbackRaw, _ := json.Marshal(fallback)
		log.Print(string(fallbackRaw))
		return
	}
	log.Print(string(raw))
}

func cloneFields(fields Fields) Fields {
	payload := make(Fields)
	for k, v := range fields {
		payload[k] = v
	}
	return payload
}
