// Package flash stores per-user notices that survive one redirect and are
// removed the first time their owner reads them.
package flash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Category classifies how a message should be presented.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryInfo    Category = "info"
	CategoryWarning Category = "warning"
	CategoryError   Category = "error"
)

// Message is a single flash notice.
type Message struct {
	Text      string    `json:"text"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Success creates a success message.
func Success(text string) Message {
	return Message{Text: text, Category: CategorySuccess}
}

// Info creates an informational message.
func Info(text string) Message {
	return Message{Text: text, Category: CategoryInfo}
}

// Warning creates a warning message.
func Warning(text string) Message {
	return Message{Text: text, Category: CategoryWarning}
}

// Error creates an error message.
func Error(text string) Message {
	return Message{Text: text, Category: CategoryError}
}

// Key returns the content hash identifying a message inside its user bucket.
// Identical text and category always hash to the same key, so repeated adds
// collapse into one stored message.
func (m Message) Key() string {
	sum := sha256.Sum256([]byte(string(m.normalizedCategory()) + "|" + strings.TrimSpace(m.Text)))
	return hex.EncodeToString(sum[:])
}

func (m Message) normalizedCategory() Category {
	switch Category(strings.ToLower(strings.TrimSpace(string(m.Category)))) {
	case CategorySuccess:
		return CategorySuccess
	case CategoryWarning:
		return CategoryWarning
	case CategoryError:
		return CategoryError
	default:
		return CategoryInfo
	}
}

func (m Message) normalize() (Message, bool) {
	m.Text = strings.TrimSpace(m.Text)
	if m.Text == "" {
		return Message{}, false
	}
	m.Category = m.normalizedCategory()
	return m, true
}
