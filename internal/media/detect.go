package media

import (
	"path/filepath"
	"strings"
)

// browseExts are the extensions that make a file an AudioFile in a listing.
// The match is exact, so "song.MP3" lists as OtherFile.
var browseExts = map[string]bool{
	"mp3":  true,
	"flac": true,
}

// decodeExts are the containers the player can open, matched case-insensitively.
var decodeExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".ogg":  true,
}

// Classify derives the kind of a listed path.
func Classify(path string, isDir bool) Kind {
	if isDir {
		return Directory
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if browseExts[ext] {
		return AudioFile
	}
	return OtherFile
}

// IsSupportedExt returns true if the extension is a format the decoder can play.
func IsSupportedExt(ext string) bool {
	return decodeExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of decodable formats.
func SupportedExtsList() string {
	return ".mp3, .flac, .wav, .ogg"
}
