package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/messaging"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/shared/event"
)

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context) context.Context {
	if instrument.GetCorrelationID(ctx) != "" {
		return ctx
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) PhotoUploadedFaceDetection(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx)

	ctx, span := h.ins.Tracer("gallery.inbound.mq").Start(ctx, "PhotoUploadedFaceDetection")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: photo uploaded face detection", "msg_body", string(body))

	var payload event.PhotoUploadedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of photo uploaded", "msg_body", string(body), "error", err)
		return nil
	}

	return h.uc.DetectFace(ctx, usecase.DetectFaceInput{
		PhotoID:   payload.PhotoID,
		UserID:    payload.UserID,
		ObjectKey: payload.ObjectKey,
	})
}
