package enum

// ReportType distinguishes the mid-shift X report from the end-of-day Z report.
type ReportType string

const (
	ReportTypeX ReportType = "X"
	ReportTypeZ ReportType = "Z"
)

func (r ReportType) Valid() bool {
	return r == ReportTypeX || r == ReportTypeZ
}
