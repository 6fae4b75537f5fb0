package inbound

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goroutine"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/messaging"
	"github.com/shandysiswandi/artmatch/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct{ body []byte }

func (m fakeMessage) Body() []byte         { return m.body }
func (m fakeMessage) Key() []byte          { return nil }
func (m fakeMessage) Header(string) string { return "" }
func (m fakeMessage) Source() string       { return event.PhotoUploadedDestination }
func (m fakeMessage) Timestamp() time.Time { return time.Time{} }

type recordConsumer struct {
	got []usecase.DetectFaceInput
	cID string
}

func (r *recordConsumer) DetectFace(ctx context.Context, in usecase.DetectFaceInput) error {
	r.got = append(r.got, in)
	r.cID = instrument.GetCorrelationID(ctx)
	return nil
}

type fixedUUID string

func (f fixedUUID) Generate() string { return string(f) }

func TestMQHandler_PhotoUploadedFaceDetection(t *testing.T) {
	rc := &recordConsumer{}
	h := &MQHandler{uc: rc, uuid: fixedUUID("gen-cid"), ins: instrument.NewNoop()}

	body := []byte(`{"photo_id":"11","user_id":"7","object_key":"7/a.png","content_type":"image/png"}`)
	require.NoError(t, h.PhotoUploadedFaceDetection(context.Background(), fakeMessage{body: body}))
	require.NoError(t, h.PhotoUploadedFaceDetection(context.Background(), fakeMessage{body: []byte("{broken")}))

	assert.Equal(t, []usecase.DetectFaceInput{{PhotoID: 11, UserID: 7, ObjectKey: "7/a.png"}}, rc.got)
	assert.Equal(t, "gen-cid", rc.cID)
}

type fakeConsumer struct {
	mu      sync.Mutex
	sources []string
}

func (f *fakeConsumer) Consume(ctx context.Context, source string, _ messaging.Handler, _ ...messaging.ConsumeOption) error {
	f.mu.Lock()
	f.sources = append(f.sources, source)
	f.mu.Unlock()
	<-ctx.Done()
	return nil
}

func TestRegisterMQConsumer(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		want []string
	}{
		{
			name: "Enabled",
			cfg:  "modules:\n  gallery:\n    consumer_names: photo_uploaded_face_detection\n",
			want: []string{event.PhotoUploadedDestination},
		},
		{
			name: "Disabled",
			cfg:  "modules:\n  gallery:\n    consumer_names: \"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewViperFromBytes("yaml", []byte(tt.cfg))
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			routine := goroutine.NewManager(2)
			fc := &fakeConsumer{}

			RegisterMQConsumer(ctx, cfg, routine, fc, fixedUUID("x"), &recordConsumer{}, instrument.NewNoop())

			assert.Eventually(t, func() bool {
				fc.mu.Lock()
				defer fc.mu.Unlock()
				return len(fc.sources) == len(tt.want)
			}, time.Second, 10*time.Millisecond)

			cancel()
			require.NoError(t, routine.Wait())
			assert.Equal(t, tt.want, fc.sources)
		})
	}
}
