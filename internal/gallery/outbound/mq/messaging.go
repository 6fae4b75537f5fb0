package mq

import (
	"context"
	"strconv"

	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/messaging"
	"github.com/shandysiswandi/artmatch/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	publisher messaging.Publisher
	ins       instrument.Instrumentation
}

func NewMessaging(publisher messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{publisher: publisher, ins: ins}
}

// PublishPhotoUploaded keys the message by user so one user's uploads stay
// ordered on partitioned brokers.
func (m *Messaging) PublishPhotoUploaded(ctx context.Context, msg event.PhotoUploadedMessage) error {
	ctx, span := m.ins.Tracer("gallery.outbound.mq").Start(ctx, "PublishPhotoUploaded")
	defer span.End()

	err := messaging.PublishJSON(ctx, m.publisher, event.PhotoUploadedDestination, strconv.FormatInt(msg.UserID, 10), msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}
