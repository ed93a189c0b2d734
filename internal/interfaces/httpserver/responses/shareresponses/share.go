package shareresponses

// ShareResponse confirms the recommendation email was accepted upstream.
type ShareResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}
