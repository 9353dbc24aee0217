package user

// User is a registered participant. The id is the opaque identifier of
// the chat platform; no further identity is kept here.
type User struct {
	ID              string
	ReminderEnabled bool
}
