package matchdto

type CreateMatchRequest struct {
	ChallengerID   string `json:"challenger_id"`
	ChallengerName string `json:"challenger_name"`
	OpponentID     string `json:"opponent_id"`
	OpponentName   string `json:"opponent_name"`
	// Color is the challenger's side: white, black or random.
	Color string `json:"color"`
}

type MoveRequest struct {
	PlayerID string `json:"player_id"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type ResignRequest struct {
	PlayerID string `json:"player_id"`
}
