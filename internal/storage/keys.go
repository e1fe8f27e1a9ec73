package storage

import (
	"net/url"
	"path"
	"strings"

	"github.com/onlyyou-coaching/catalog-sync/internal/extract"
)

// videoFolders are the top-level folders under Video/ whose second path
// component names the region.
var videoFolders = map[string]bool{
	"groupes-musculaires":   true,
	"programmes-predefinis": true,
}

// EncodeKeyPath percent-encodes each segment of an S3 key separately so
// slashes survive: "Video/dos/10.1 Rowing.mp4" keeps its path structure
// with the spaces escaped.
func EncodeKeyPath(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// RegionFromKey derives the region tag from an object key's folder layout
// ("Video/groupes-musculaires/dos/10.1 Rowing.mp4" yields "dos"). Keys
// outside the known folders, or files sitting directly in a known folder
// with no region directory, yield the empty string.
func RegionFromKey(key string) string {
	parts := strings.Split(key, "/")
	if len(parts) >= 4 && videoFolders[parts[1]] {
		return parts[2]
	}
	return ""
}

// TitleFromKey derives a display title from an object key's filename:
// extension and leading index stripped, separators spaced, first letter
// capitalized.
func TitleFromKey(key string) string {
	name := extract.StripExtension(path.Base(key))
	cleaned := extract.CleanDisplayTitle(name, []string{})
	cleaned = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(cleaned))
	if cleaned == "" {
		return cleaned
	}
	runes := []rune(strings.ToLower(cleaned))
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// ThumbnailKey maps a video key to its expected thumbnail object, mirroring
// the layout the thumbnail Lambda writes to.
func ThumbnailKey(videoKey string) string {
	base := extract.StripExtension(videoKey)
	return "thumbnails/" + base + ".jpg"
}
