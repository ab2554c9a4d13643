package utils

import (
	"fmt"
	"math"
	"os"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count the way clients display it, e.g.
// "10.00 MB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	const k = 1024
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	return fmt.Sprintf("%.2f %s", float64(bytes)/math.Pow(k, float64(i)), sizeUnits[i])
}

// FileSize stats a path, reporting 0 for anything unreadable.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
