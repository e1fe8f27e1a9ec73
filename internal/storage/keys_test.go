package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeKeyPath(t *testing.T) {
	assert.Equal(t,
		"Video/groupes-musculaires/dos/10.1%20Rowing%20poulie.mp4",
		EncodeKeyPath("Video/groupes-musculaires/dos/10.1 Rowing poulie.mp4"))
	assert.Equal(t, "simple.mp4", EncodeKeyPath("simple.mp4"))
}

func TestRegionFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"Video/groupes-musculaires/dos/10.1 Rowing.mp4", "dos"},
		{"Video/programmes-predefinis/machine/3. Leg curl.mp4", "machine"},
		{"Video/autre/fichier.mp4", ""},
		{"Video/groupes-musculaires/fichier.mp4", ""},
		{"fichier.mp4", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RegionFromKey(tt.key), tt.key)
	}
}

func TestTitleFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"Video/dos/10.1 rowing-poulie_basse.mp4", "Rowing poulie basse"},
		{"Video/abdos/2. Gainage planche.mp4", "Gainage planche"},
		{"Video/epaules/élévation latérale.mp4", "Élévation latérale"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleFromKey(tt.key), tt.key)
	}
}

func TestThumbnailKey(t *testing.T) {
	assert.Equal(t,
		"thumbnails/Video/dos/10.1 Rowing.jpg",
		ThumbnailKey("Video/dos/10.1 Rowing.mp4"))
}
