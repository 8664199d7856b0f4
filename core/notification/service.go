package notification

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

var (
	ErrNotFound = errors.New("notification not found")
	// ErrBatchFailed is returned when a batch could only be partially written and was rolled back.
	ErrBatchFailed = errors.New("notification batch failed")
)

type (
	Repository interface {
		// InsertBatch writes all notifications or none of them.
		InsertBatch(ctx context.Context, batch []Notification) ([]Notification, error)
		GetNotification(ctx context.Context, id int) (Notification, error)
		// ListByRecipient returns the newest notifications first.
		ListByRecipient(ctx context.Context, recipientID int) ([]Notification, error)
		SetRead(ctx context.Context, id int, read bool) (Notification, error)
		DeleteNotification(ctx context.Context, id int) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		clock    core.Clock
	}
)

func NewService(repo Repository, validate *validator.Validate, clock core.Clock) *Service {
	return &Service{repo: repo, validate: validate, clock: clock}
}

// Send notifies every recipient of nn in a single batch.
func (svc *Service) Send(ctx context.Context, actor core.Actor, nn NewNotification) ([]Notification, error) {
	if !(actor.IsAdmin() || actor.IsTeacher()) {
		return nil, core.ErrForbidden
	}
	nn.Clean()
	if err := svc.validate.Struct(nn); err != nil {
		return nil, err
	}
	return svc.repo.InsertBatch(ctx, Batch(nn.RecipientIDs, nn.Title, nn.Message, svc.clock.Now()))
}

func (svc *Service) ListForRecipient(ctx context.Context, recipientID int) ([]Notification, error) {
	return svc.repo.ListByRecipient(ctx, recipientID)
}

// SetRead marks a notification read or unread. Only its recipient may do so.
func (svc *Service) SetRead(ctx context.Context, actor core.Actor, id int, read bool) (Notification, error) {
	n, err := svc.repo.GetNotification(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if n.RecipientID != actor.ID {
		return Notification{}, core.ErrForbidden
	}
	if n.IsRead == read {
		return n, nil
	}
	return svc.repo.SetRead(ctx, id, read)
}

// Delete removes a notification for good. Its recipient or an admin may do so.
func (svc *Service) Delete(ctx context.Context, actor core.Actor, id int) error {
	n, err := svc.repo.GetNotification(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != actor.ID && !actor.IsAdmin() {
		return core.ErrForbidden
	}
	return svc.repo.DeleteNotification(ctx, id)
}
