package request

// CreateGameRequest is the request body for starting a game
type CreateGameRequest struct {
	Mode string `json:"mode,omitempty"`
}

// PositionRequest is the request body for actions that target one cell
type PositionRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// AutoPlayRequest is the request body for letting a bot take turns
type AutoPlayRequest struct {
	Strategy string `json:"strategy,omitempty"`
	Turns    int    `json:"turns,omitempty"`
}
