package processor

import "errors"

// ErrQuotaExceeded is returned when a request would exceed its quota
var ErrQuotaExceeded = errors.New("processing quota exceeded")

// Quota is an explicit per-request usage counter. Callers own the
// counter and pass it into each processing call; nothing here is
// ambient or shared.
type Quota struct {
	Limit int
	Used  int
}

// NewQuota creates a quota with the given limit
func NewQuota(limit int) *Quota {
	return &Quota{Limit: limit}
}

// Remaining returns the number of calls left
func (q *Quota) Remaining() int {
	if q == nil {
		return 0
	}
	r := q.Limit - q.Used
	if r < 0 {
		return 0
	}
	return r
}

// Consume uses one unit. A nil quota is unlimited.
func (q *Quota) Consume() error {
	if q == nil {
		return nil
	}
	if q.Used >= q.Limit {
		return ErrQuotaExceeded
	}
	q.Used++
	return nil
}
