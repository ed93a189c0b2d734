package libraryrequests

// AddItemRequest saves one movie to a user's watchlist or watched list.
type AddItemRequest struct {
	TMDBID int     `json:"tmdbId" binding:"required,gt=0"`
	Title  string  `json:"title" binding:"required"`
	Poster string  `json:"poster"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating" binding:"omitempty,gte=0,lte=10"`
}
