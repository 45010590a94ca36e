package common

// DateLayout
const (
	DateFormatYYYYMMDD = "2006-01-02"
)

// ISO8601Layouts are tried in order when reading timestamps from upstream records.
// Fractional seconds are optional for every layout that has seconds.
var ISO8601Layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	DateFormatYYYYMMDD,
}
