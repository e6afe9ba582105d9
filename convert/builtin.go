package convert

import (
	"time"

	"github.com/golang-sql/civil"
)

// Built-in converter IDs.
const (
	TimestampToLocalDateTimeID = "timestamp-to-local-datetime"
	DateToLocalDateID          = "date-to-local-date"
	TimeToLocalTimeID          = "time-to-local-time"
)

// Builtins returns the converters every Registry starts with.
// Each one reads the wall clock of the value in its own location.
func Builtins() []Converter {
	return []Converter{
		NewFunc(TimestampToLocalDateTimeID, Timestamp, LocalDateTime, true, func(raw any) any {
			t, ok := raw.(time.Time)
			if !ok {
				return raw
			}

			return civil.DateTimeOf(t)
		}),
		NewFunc(DateToLocalDateID, Date, LocalDate, true, func(raw any) any {
			t, ok := raw.(time.Time)
			if !ok {
				return raw
			}

			return civil.DateOf(t)
		}),
		NewFunc(TimeToLocalTimeID, Time, LocalTime, true, func(raw any) any {
			t, ok := raw.(time.Time)
			if !ok {
				return raw
			}

			return civil.TimeOf(t)
		}),
	}
}
