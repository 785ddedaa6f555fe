package model

type QueueMsgBoardingPassIssued struct {
	SessionID    string       `json:"session_id"`
	Email        string       `json:"email"`
	BoardingPass BoardingPass `json:"boarding_pass"`
	Payload      string       `json:"payload"`
}
