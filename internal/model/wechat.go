package model

// MessageKind is the closed set of WeChat protocol message-type codes the
// bridge delivers. Only KindText has a handler; everything else is logged and
// dropped by the router.
type MessageKind int

const (
	KindFriendCircle        MessageKind = 0
	KindText                MessageKind = 1
	KindImage               MessageKind = 3
	KindVoice               MessageKind = 34
	KindFriendConfirmation  MessageKind = 37
	KindPossibleFriendMsg   MessageKind = 40
	KindBusinessCard        MessageKind = 42
	KindVideo               MessageKind = 43
	KindEmojiGame           MessageKind = 47
	KindLocation            MessageKind = 48
	KindLinkShare           MessageKind = 49
	KindVoipMsg             MessageKind = 50
	KindWechatInit          MessageKind = 51
	KindVoipNotify          MessageKind = 52
	KindVoipInvite          MessageKind = 53
	KindShortVideo          MessageKind = 62
	KindRedPacket           MessageKind = 66
	KindSysNotice           MessageKind = 9999
	KindSystemMessage       MessageKind = 10000
	KindRevokeMessage       MessageKind = 10002
	KindSogouEmoji          MessageKind = 1048625
	KindLink                MessageKind = 16777265
	KindRedPacketV2         MessageKind = 436207665
	KindRedPacketCover      MessageKind = 536936497
	KindVideoChannelVideo   MessageKind = 754974769
	KindVideoChannelCard    MessageKind = 771751985
	KindQuotedMessage       MessageKind = 822083633
	KindTapTap              MessageKind = 922746929
	KindVideoChannelLive    MessageKind = 973078577
	KindProductLink         MessageKind = 974127153
	KindVideoChannelLiveV2  MessageKind = 975175729
	KindMusicLink           MessageKind = 1040187441
	KindFile                MessageKind = 1090519089
)

// WechatMessage is one normalized inbound event from the bridge, persisted
// append-only. RoomID is populated only for group messages.
type WechatMessage struct {
	ID      int64       `json:"id"`
	IsSelf  bool        `json:"is_self"`
	IsGroup bool        `json:"is_group"`
	Kind    MessageKind `json:"type"`
	TS      int64       `json:"ts"`
	RoomID  string      `json:"roomid"`
	Content string      `json:"content"`
	Sender  string      `json:"sender"`
	Sign    string      `json:"sign"`
	Thumb   string      `json:"thumb"`
	Extra   string      `json:"extra"`
	XML     string      `json:"xml"`
}
