// Package filetype gates uploaded bytes against a claimed media category.
// Magic-byte sniffing catches spoofed extensions for binary formats; a few
// heuristics cover text-based or headerless containers a signature check
// cannot classify.
package filetype

import (
	"bytes"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/draftstudio/media-backend/internal/models"
)

const (
	// binaryCheckLen bounds the null-byte scan used to tell text from
	// arbitrary binary data.
	binaryCheckLen = 1000
	// m3u8MarkerLen bounds the search for the #EXTM3U playlist marker.
	m3u8MarkerLen = 50
	// mpegTSSyncByte starts every MPEG transport stream packet.
	mpegTSSyncByte = 0x47
)

// Matches reports whether buf plausibly belongs to the claimed category.
// ext is the already-derived file extension (".m3u8", ".ts", ...), used
// only for the text-based video container heuristics. Pure and
// deterministic: identical bytes always classify identically.
func Matches(buf []byte, ext string, category models.MediaType) bool {
	detected := mimetype.Detect(buf)

	// HLS playlists are text; the extension heuristics below decide them,
	// not the playlist signature.
	if isPlaylist(detected) {
		detected = nil
	}

	if family, ok := mediaFamily(detected); ok {
		switch category {
		case models.MediaTypeImage:
			return family == "image"
		case models.MediaTypeAudio:
			return family == "audio"
		case models.MediaTypeVideo:
			return family == "video"
		case models.MediaTypeText, models.MediaTypeSubtitle:
			// Binary media masquerading as text.
			return false
		}
		return false
	}

	if recognized(detected) {
		// A concrete non-media signature (json, xml, pdf, zip, ...):
		// permissive for text-like categories, a mismatch for the rest.
		return category == models.MediaTypeText || category == models.MediaTypeSubtitle
	}

	switch category {
	case models.MediaTypeText, models.MediaTypeSubtitle:
		return !isBinary(buf)
	case models.MediaTypeVideo:
		switch strings.ToLower(ext) {
		case ".m3u8":
			if isBinary(buf) {
				return false
			}
			head := buf
			if len(head) > m3u8MarkerLen {
				head = head[:m3u8MarkerLen]
			}
			return bytes.Contains(head, []byte("#EXTM3U"))
		case ".ts":
			return len(buf) > 0 && buf[0] == mpegTSSyncByte
		}
	}

	// No signature and no heuristic applies: binary categories are
	// rejected rather than trusted.
	return false
}

// mediaFamily maps a detection to one of the binary media families the
// gate cares about. MPEG-TS counts as video whatever label the detector
// gives it.
func mediaFamily(m *mimetype.MIME) (string, bool) {
	if m == nil {
		return "", false
	}
	if m.Is("video/mp2t") {
		return "video", true
	}
	mime := m.String()
	for _, family := range []string{"image/", "audio/", "video/"} {
		if strings.HasPrefix(mime, family) {
			return strings.TrimSuffix(family, "/"), true
		}
	}
	return "", false
}

func isPlaylist(m *mimetype.MIME) bool {
	if m == nil {
		return false
	}
	return m.Is("audio/x-mpegurl") || m.Is("application/vnd.apple.mpegurl") || m.Is("application/x-mpegURL")
}

// recognized reports whether the detector found a concrete signature, as
// opposed to its text/plain and octet-stream fallbacks.
func recognized(m *mimetype.MIME) bool {
	if m == nil {
		return false
	}
	return !m.Is("text/plain") && !m.Is("application/octet-stream")
}

func isBinary(buf []byte) bool {
	n := len(buf)
	if n > binaryCheckLen {
		n = binaryCheckLen
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}
