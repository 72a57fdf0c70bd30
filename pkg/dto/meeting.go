package dto

type MeetingResponse struct {
	RoomID string `json:"room_id"`
	URL    string `json:"url"`
}

type JoinMeetingRequest struct {
	Code string `json:"code"`
}

type JoinMeetingResponse struct {
	URL string `json:"url"`
}

type ShareMeetingRequest struct {
	Email string `json:"email"`
	URL   string `json:"url"`
}
