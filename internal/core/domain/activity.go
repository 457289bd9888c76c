package domain

import "time"

type ActivityAction string

const (
	ActivityReload ActivityAction = "reload"
	ActivitySearch ActivityAction = "search"
	ActivitySort   ActivityAction = "sort"
	ActivityExport ActivityAction = "export"
	ActivityCreate ActivityAction = "create"
	ActivityUpdate ActivityAction = "update"
)

// ActivityEvent records a single dashboard user action for the
// activity stream.
type ActivityEvent struct {
	Action     ActivityAction
	Query      string
	ProductID  int64
	Page       int
	OccurredAt time.Time
}
