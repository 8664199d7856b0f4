package notification

import (
	"time"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

type Notification struct {
	ID          int       `json:"id"`
	RecipientID int       `json:"recipient_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// Batch builds one unread notification per recipient, all with the same content.
func Batch(recipientIDs []int, title, message string, at time.Time) []Notification {
	batch := make([]Notification, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		batch = append(batch, Notification{
			RecipientID: id,
			Title:       title,
			Message:     message,
			CreatedAt:   at,
		})
	}
	return batch
}

// NewNotification contains information needed to notify a set of users.
type NewNotification struct {
	RecipientIDs []int  `json:"recipient_ids" validate:"required,min=1,dive,gt=0"`
	Title        string `json:"title" validate:"required,max=255"`
	Message      string `json:"message" validate:"required"`
}

func (nn *NewNotification) Clean() {
	nn.Title = core.CleanString(nn.Title)
	nn.Message = core.CleanString(nn.Message)
	nn.RecipientIDs = core.UniqueInts(nn.RecipientIDs)
}

type UpdateRead struct {
	IsRead *bool `json:"is_read" validate:"required"`
}
