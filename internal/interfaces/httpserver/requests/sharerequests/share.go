package sharerequests

import "movision-server/internal/domain/movie"

// ShareRequest emails a list of recommendations to a recipient.
type ShareRequest struct {
	Email   string           `json:"email" binding:"required,email"`
	Name    string           `json:"name"`
	Subject string           `json:"subject"`
	Movies  []movie.Enriched `json:"movies" binding:"required,min=1,max=20"`
}
