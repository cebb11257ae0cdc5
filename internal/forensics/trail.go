// Package forensics writes a JSON-lines trail of enforcement decisions for
// offline review. Best-effort: a broken trail never blocks enforcement.
package forensics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	IncidentID string            `json:"incident_id"`
	Timestamp  int64             `json:"timestamp"`
	GuildID    string            `json:"guild_id"`
	ChannelID  string            `json:"channel_id"`
	MessageID  string            `json:"message_id"`
	UserID     string            `json:"user_id"`
	Filter     string            `json:"filter"`
	Reason     string            `json:"reason"`
	Steps      map[string]string `json:"steps"`
	Escalation map[string]any    `json:"escalation,omitempty"`
}

type Trail struct {
	mu   sync.Mutex
	file *os.File
}

func NewTrail(path string) (*Trail, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &Trail{file: file}, nil
}

// Record stamps the entry with an incident id and appends it.
func (t *Trail) Record(entry *Entry) error {
	entry.IncidentID = uuid.NewString()
	entry.Timestamp = time.Now().UnixNano()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err = t.file.Write(data)
	return err
}

func (t *Trail) Close() error {
	return t.file.Close()
}
