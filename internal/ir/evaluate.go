package ir

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Evaluate produces a concrete value for a default. Literal and UUIDv4
// and Now evaluate locally; AutoIncrement has no process-local value
// because the sequence lives in storage.
func Evaluate(d DefaultValue) (any, error) {
	switch d.DefaultKind() {
	case DefaultLiteral:
		return d.(Literal).Value, nil
	case DefaultNow:
		return time.Now().UTC(), nil
	case DefaultUUIDv4:
		return uuid.NewString(), nil
	case DefaultAutoIncrement:
		return nil, fmt.Errorf("auto_increment defaults are assigned by storage")
	default:
		return nil, fmt.Errorf("unknown default kind: %d", d.DefaultKind())
	}
}
