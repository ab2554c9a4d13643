package usecase

import (
	"path/filepath"
	"strings"

	"github.com/draftstudio/media-backend/internal/models"
)

// extByMime maps declared MIME types to storage extensions. The declared
// file name's extension is the fallback when the MIME is unknown.
var extByMime = map[string]string{
	// image
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
	// audio
	"audio/mpeg": ".mp3",
	"audio/wav":  ".wav",
	"audio/ogg":  ".ogg",
	"audio/webm": ".weba",
	// video
	"video/mp4":                     ".mp4",
	"video/webm":                    ".webm",
	"video/ogg":                     ".ogv",
	"application/vnd.apple.mpegurl": ".m3u8",
	"application/x-mpegURL":         ".m3u8",
	"video/MP2T":                    ".ts",
	// subtitle
	"text/vtt":             ".vtt",
	"application/x-subrip": ".srt",
	"text/x-ssa":           ".ssa",
	"text/x-ass":           ".ass",
	// text
	"text/plain":       ".txt",
	"text/markdown":    ".md",
	"application/json": ".json",
	"text/xml":         ".xml",
	"application/xml":  ".xml",
	"text/csv":         ".csv",
}

// Known extensions per category, used when reconciling records from files
// already on disk.
var extByType = map[models.MediaType]map[string]struct{}{
	models.MediaTypeImage:    extSet(".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg"),
	models.MediaTypeAudio:    extSet(".mp3", ".wav", ".ogg", ".weba"),
	models.MediaTypeVideo:    extSet(".mp4", ".webm", ".ogv", ".m3u8", ".ts"),
	models.MediaTypeSubtitle: extSet(".vtt", ".srt", ".ssa", ".ass", ".sub"),
	models.MediaTypeText:     extSet(".txt", ".md", ".json", ".xml", ".csv", ".log"),
}

func extSet(exts ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		s[e] = struct{}{}
	}
	return s
}

func deriveExt(mimeType, fileName string) string {
	if ext, ok := extByMime[mimeType]; ok {
		return ext
	}
	return strings.ToLower(filepath.Ext(fileName))
}
