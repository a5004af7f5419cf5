package views

import (
	"time"

	"servicehub/models"
	"servicehub/services/chat"
)

const UpgradeHint = "Upgrade to send attachments and voice messages"

type ChatHeader struct {
	ProviderID   string `json:"providerId"`
	Title        string `json:"title"`
	Initials     string `json:"initials"`
	ProfileImage string `json:"profileImage,omitempty"`
	Status       string `json:"status"`
}

// ChatPanelView is the open conversation. While locked the attachment and voice
// buttons are shown disabled and an upgrade hint is rendered under the input.
type ChatPanelView struct {
	Header           ChatHeader           `json:"header"`
	Messages         []models.ChatMessage `json:"messages"`
	Recording        bool                 `json:"recording"`
	AttachmentLocked bool                 `json:"attachmentLocked"`
	VoiceLocked      bool                 `json:"voiceLocked"`
	UpgradeHint      string               `json:"upgradeHint,omitempty"`
	OpenedAt         time.Time            `json:"openedAt"`
}

func PresenceLabel(available bool) string {
	if available {
		return "Online"
	}
	return "Away"
}

func NewChatPanelView(snap chat.Snapshot, premium bool) ChatPanelView {
	v := ChatPanelView{
		Header: ChatHeader{
			ProviderID:   snap.Provider.ID,
			Title:        snap.Provider.Title,
			Initials:     Initials(snap.Provider.Title),
			ProfileImage: snap.Provider.ProfileImage,
			Status:       PresenceLabel(snap.Provider.Availability),
		},
		Messages:         snap.Messages,
		Recording:        snap.Recording,
		AttachmentLocked: !premium,
		VoiceLocked:      !premium,
		OpenedAt:         snap.OpenedAt,
	}
	if v.Messages == nil {
		v.Messages = []models.ChatMessage{}
	}
	if !premium {
		v.UpgradeHint = UpgradeHint
	}
	return v
}
