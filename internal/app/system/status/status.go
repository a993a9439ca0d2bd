// internal/app/system/status/status.go
package status

// Assignment lifecycle statuses. Status is a free-form enum, not a guarded
// state machine: any valid value may be set at any time (completed back to
// active is allowed).
const (
	Active    = "active"
	Paused    = "paused"
	Completed = "completed"
)

// Valid reports whether s is a recognized assignment status.
func Valid(s string) bool {
	switch s {
	case Active, Paused, Completed:
		return true
	}
	return false
}
