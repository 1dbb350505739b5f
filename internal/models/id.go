package models

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var taskIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// NewTaskID returns a 24 hex character id: a 4-byte creation timestamp followed by
// 8 random bytes.
func NewTaskID(now time.Time) string {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[:4], uint32(now.Unix()))
	r := uuid.New()
	copy(buf[4:], r[:8])
	return hex.EncodeToString(buf[:])
}

// IsTaskID reports whether s has the strict task id shape.
func IsTaskID(s string) bool {
	return taskIDPattern.MatchString(s)
}
