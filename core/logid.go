package core

import "time"

// NewLogID derives a correlation id from t with 10µs resolution, masked
// to 31 bits. Ids grow with time until the mask wraps them.
func NewLogID(t time.Time) int64 {
	micros := int64(t.Nanosecond() / int(time.Microsecond))
	return (t.Unix()*100000 + micros/10) & 0x7FFFFFFF
}
