package domain

// Event is what the inventory service hands to background workers after a
// successful mutation.
type Event struct {
	Transaction Transaction
	Alert       *Alert
}
