package models

// MediaType is the category a client claims for an uploaded file. The
// classifier gates every upload against it.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeVideo    MediaType = "video"
	MediaTypeSubtitle MediaType = "subtitle"
	MediaTypeText     MediaType = "text"
)

func MediaTypes() []MediaType {
	return []MediaType{MediaTypeImage, MediaTypeAudio, MediaTypeVideo, MediaTypeSubtitle, MediaTypeText}
}

func (t MediaType) IsValid() bool {
	switch t {
	case MediaTypeImage, MediaTypeAudio, MediaTypeVideo, MediaTypeSubtitle, MediaTypeText:
		return true
	}
	return false
}

// DirName is the per-category directory under the uploads root.
func (t MediaType) DirName() string {
	switch t {
	case MediaTypeSubtitle:
		return "subtitles"
	case MediaTypeText:
		return "texts"
	default:
		return string(t) + "s"
	}
}

type MediaFile struct {
	MediaID       string                 `json:"id" validate:"omitempty"`
	Type          MediaType              `json:"type" validate:"required"`
	URL           string                 `json:"url" validate:"required,lte=512"`
	Name          string                 `json:"name" validate:"required,lte=255"`
	Size          int64                  `json:"size" validate:"omitempty"`
	SizeFormatted string                 `json:"sizeFormatted,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type MediaList struct {
	Media      []*MediaFile `json:"media"`
	TotalCount int          `json:"total_count"`
	TotalPages int          `json:"total_pages"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	HasMore    bool         `json:"has_more"`
}

type MediaTypeStats struct {
	Count         int    `json:"count"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"sizeFormatted"`
}

type MediaStats struct {
	Total  MediaTypeStats               `json:"total"`
	ByType map[MediaType]MediaTypeStats `json:"byType"`
}

type SyncResult struct {
	Message string            `json:"message"`
	Added   int               `json:"added"`
	Details map[MediaType]int `json:"details"`
}

type MediaSizeInfo struct {
	MediaID       string `json:"id"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"sizeFormatted"`
}

// UploadInput is one decoded multipart upload request. Metadata carries the
// raw JSON form field; the pipeline parses it.
type UploadInput struct {
	Type     MediaType `validate:"required"`
	FileName string    `validate:"omitempty,lte=255"`
	MimeType string    `validate:"omitempty,lte=128"`
	Name     string    `validate:"omitempty,lte=255"`
	Data     []byte    `validate:"omitempty"`
	Metadata string    `validate:"omitempty"`
}
