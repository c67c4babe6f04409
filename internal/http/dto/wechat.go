package dto

import "wxgate.app/wxgate/internal/model"

// WechatWebhookRequest mirrors the bridge's callback payload field for field.
type WechatWebhookRequest struct {
	ID      int64  `json:"id"`
	IsSelf  bool   `json:"is_self"`
	IsGroup bool   `json:"is_group"`
	Type    int    `json:"type"`
	TS      int64  `json:"ts"`
	RoomID  string `json:"roomid"`
	Content string `json:"content"`
	Sender  string `json:"sender"`
	Sign    string `json:"sign"`
	Thumb   string `json:"thumb"`
	Extra   string `json:"extra"`
	XML     string `json:"xml"`
}

func (r *WechatWebhookRequest) ToMessage() *model.WechatMessage {
	return &model.WechatMessage{
		ID:      r.ID,
		IsSelf:  r.IsSelf,
		IsGroup: r.IsGroup,
		Kind:    model.MessageKind(r.Type),
		TS:      r.TS,
		RoomID:  r.RoomID,
		Content: r.Content,
		Sender:  r.Sender,
		Sign:    r.Sign,
		Thumb:   r.Thumb,
		Extra:   r.Extra,
		XML:     r.XML,
	}
}
