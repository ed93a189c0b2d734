package chat

// MovieCandidate is one raw recommendation as emitted by the model. Year
// and Rating are left loosely typed because the model may emit either
// numbers or strings; nothing here is trusted until enrichment.
type MovieCandidate struct {
	Title    string `json:"title"`
	Year     any    `json:"year,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Rating   any    `json:"rating,omitempty"`
	Runtime  string `json:"runtime,omitempty"`
	Director string `json:"director,omitempty"`
	Plot     string `json:"plot,omitempty"`
	Why      string `json:"why,omitempty"`
}
