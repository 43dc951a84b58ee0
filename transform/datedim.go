package transform

import "time"

// Default date dimension bounds. The raw sources are all live feeds, so the
// fixed range just needs to cover the dates the pipeline will observe.
const (
	DefaultStartDate = "2024-01-01"
	DefaultEndDate   = "2026-12-31"
)

// DateKey encodes a timestamp's calendar date (in its own location) as the
// integer yyyyMMdd join key.
func DateKey(t time.Time) int32 {
	y, m, d := t.Date()
	return int32(y*10000 + int(m)*100 + d)
}

// DateDimension generates one row per calendar day in [start, end],
// inclusive. Day-of-week numbering is Sunday=1 through Saturday=7, so a day
// is a weekend iff its number is 1 or 7. Deterministic; no failure modes.
func DateDimension(start, end time.Time) []DateRow {
	var rows []DateRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dow := int32(d.Weekday()) + 1
		rows = append(rows, DateRow{
			DateKey:   DateKey(d),
			FullDate:  d,
			Year:      int32(d.Year()),
			Quarter:   (int32(d.Month())-1)/3 + 1,
			Month:     int32(d.Month()),
			MonthName: d.Month().String(),
			DayOfWeek: dow,
			DayName:   d.Weekday().String(),
			IsWeekend: dow == 1 || dow == 7,
		})
	}
	return rows
}
