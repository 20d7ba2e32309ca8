package emoji

import "sync/atomic"

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":     {"❌", "[ERR]"},
	"warning":   {"⚠️", "[WRN]"},
	"info":      {"ℹ️", "[INF]"},
	"success":   {"✅", "[OK]"},
	"scan":      {"🔍", "[SCAN]"},
	"globe":     {"🌐", "[WEB]"},
	"report":    {"📄", "[RPT]"},
	"clipboard": {"📋", "[CPY]"},
	"clock":     {"🕒", "[T]"},
	"retry":     {"🔁", "[RETRY]"},
	"export":    {"📥", "[PDF]"},
	"config":    {"⚙️", "[CFG]"},
	"folder":    {"📁", "[DIR]"},
	"brain":     {"🧠", "[AI]"},
	"rocket":    {"🚀", "[GO]"},
	"help":      {"❓", "[?]"},
	"door":      {"🚪", "[EXIT]"},
	"stats":     {"📊", "[STATS]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// Prefix returns the emoji for key followed by a space, for status lines
func Prefix(key string) string {
	return GetEmoji(key) + " "
}
