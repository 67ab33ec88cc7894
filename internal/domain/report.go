package domain

// NoneFound is the line shown for an empty report section.
const NoneFound = "None found."

// ReportRow is one line of a report section.
type ReportRow struct {
	Title     string `json:"title"`
	AddedTime *int   `json:"added_time,omitempty"`
}

// ReportSection is a titled list of rows. Empty is true when the section has
// no rows and Lines holds only the NoneFound line.
type ReportSection struct {
	Title string      `json:"title"`
	Rows  []ReportRow `json:"rows"`
	Empty bool        `json:"empty"`
	Lines []string    `json:"lines"`
}

// ResultReport is derived from the Update job's terminal status and never
// treated as authoritative state.
type ResultReport struct {
	Message   string        `json:"message"`
	Updated   ReportSection `json:"updated"`
	Unchanged ReportSection `json:"unchanged"`
}
