package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goroutine"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/messaging"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	uuid uid.StringID,
	uc ucConsumer,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.gallery.consumer_names")
	concurrency := cfg.GetInt("modules.gallery.consumer_concurrency")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		group   string // kafka consumer group, nats queue group
		handler messaging.Handler
	}{
		{
			name:    event.PhotoUploadedConsumerFaceDetection,
			topic:   event.PhotoUploadedDestination,
			group:   event.PhotoUploadedConsumerFaceDetection,
			handler: mqHandler.PhotoUploadedFaceDetection,
		},
	}

	for _, c := range consumers {
		if !slices.Contains(enableConsumerNames, c.name) {
			continue
		}

		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", c.name)
			return consumer.Consume(pCtx,
				c.topic,
				c.handler,
				messaging.WithGroup(c.group),
				messaging.WithConcurrency(concurrency),
			)
		})
	}
}
