package dto

// ResearchQueryRequest is a free-text research query.
type ResearchQueryRequest struct {
	Query            string `json:"query"`
	Limit            int    `json:"limit,omitempty"`
	TimeSpentSeconds int    `json:"time_spent_seconds,omitempty"`
}

// ResearchResultResponse is one research finding.
type ResearchResultResponse struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// ResearchQueryResponse carries findings plus the updated stats, since a
// recorded research session moves study time and the session counter.
type ResearchQueryResponse struct {
	Results []ResearchResultResponse `json:"results"`
	Stats   StatsResponse            `json:"stats"`
}

// AnalyzeTextRequest asks for a summary of pasted material.
type AnalyzeTextRequest struct {
	Text             string `json:"text"`
	TimeSpentSeconds int    `json:"time_spent_seconds,omitempty"`
}

// AnalyzeTextResponse is the condensed form of the submitted text.
type AnalyzeTextResponse struct {
	Summary   string        `json:"summary"`
	KeyPoints []string      `json:"key_points"`
	Stats     StatsResponse `json:"stats"`
}
