// Package research defines the records returned by the web-search boundary.
package research

// Result is one ranked search hit with source attribution.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}
