package event

const PhotoUploadedDestination string = "photo_uploaded"
const PhotoUploadedConsumerFaceDetection string = "photo_uploaded_face_detection"

type PhotoUploadedMessage struct {
	PhotoID     int64  `json:"photo_id,string"`
	UserID      int64  `json:"user_id,string"`
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
}
