package domain

// ReminderKind tags which party and event a start-of-rental reminder
// concerns. The values are stored as-is in the reminder log's natural key.
type ReminderKind string

const (
	ReminderKindRenterStart ReminderKind = "renter_start"
	ReminderKindOwnerStart  ReminderKind = "owner_start"
)

// DueReminder is one approved rental joined with the parties to remind.
// Either email may be empty when the user never supplied an address; that
// recipient is skipped, the other is still attempted.
type DueReminder struct {
	RequestID   int32
	ToolName    string
	StartDate   string
	RenterName  string
	RenterEmail string
	OwnerName   string
	OwnerEmail  string
}
