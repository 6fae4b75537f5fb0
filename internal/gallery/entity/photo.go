package entity

import "time"

type FaceStatus int16

const (
	FaceStatusUnknown     FaceStatus = 0
	FaceStatusPending     FaceStatus = 1
	FaceStatusDetected    FaceStatus = 2
	FaceStatusNotDetected FaceStatus = 3
	FaceStatusFailed      FaceStatus = 4
)

func (s FaceStatus) String() string {
	switch s {
	case FaceStatusPending:
		return "pending"
	case FaceStatusDetected:
		return "detected"
	case FaceStatusNotDetected:
		return "not_detected"
	case FaceStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Photo struct {
	ID          int64
	UserID      int64
	ObjectKey   string
	ContentType string
	Size        int64
	FaceStatus  FaceStatus
	UploadedAt  time.Time
}

type PhotoFilter struct {
	UserID int64
	Limit  int32
	Offset int32
}
