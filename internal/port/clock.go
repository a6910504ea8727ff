package port

import "time"

// Clock supplies the current time for item creation, transaction stamps and age reports.
type Clock interface {
	Now() time.Time
}
