package quota

import "time"

// DateLayout is the calendar-date form stored in DailyQuota.Date. Comparison
// is on the date only, so the counter resets at local midnight.
const DateLayout = "2006-01-02"

// RecordTTL bounds how long a stale record lingers in the store. It has no
// bearing on correctness (stale dates are reset on read), only on storage
// hygiene.
const RecordTTL = 365 * 24 * time.Hour

// DailyQuota is the persisted per-client message counter. A record is only
// meaningful for the calendar date it names; any record whose date is not
// "today" is treated as {Count: 0, Date: today} before use.
type DailyQuota struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}
