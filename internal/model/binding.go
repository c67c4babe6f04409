package model

// ConversationBinding is the durable association between a group room and the
// external AI conversation that serves it. At most one binding exists per
// room; once created it is never rebound or expired by this service.
type ConversationBinding struct {
	RoomID string `json:"roomid"`
	ChatID string `json:"chat_id"`
}
