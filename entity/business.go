package entity

// Business is a single result returned by the search provider.
type Business struct {
	Name    string  `json:"name"`
	Snippet string  `json:"snippet_text"`
	Rating  float64 `json:"rating"`
}
