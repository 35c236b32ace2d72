package session

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/careergraph/pkg/domain"
)

var (
	// DefaultMaxNodeIDSize bounds node ids carried by intents.
	DefaultMaxNodeIDSize = 256
	// EnvMaxNodeIDSize overrides DefaultMaxNodeIDSize.
	EnvMaxNodeIDSize = "CAREERGRAPH_MAX_NODE_ID_SIZE"
)

var (
	ErrNodeIDTooLarge = errors.New("node id exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("node id contains invalid UTF-8 sequences")
	ErrReservedID     = errors.New("node id contains the edge separator")
)

// SanitizeNodeID enforces the size limit, validates UTF-8, strips control
// characters and trims surrounding space. Oversized ids and ids containing
// domain.EdgeSeparator are rejected, not truncated.
func SanitizeNodeID(id string) (string, error) {
	limit := maxNodeIDSize()
	if len(id) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrNodeIDTooLarge, len(id), limit)
	}
	if !utf8.ValidString(id) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range id {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if !clean {
		var b strings.Builder
		b.Grow(len(id))
		for _, r := range id {
			if !unicode.IsControl(r) {
				b.WriteRune(r)
			}
		}
		id = b.String()
	}

	id = strings.TrimSpace(id)
	if strings.Contains(id, domain.EdgeSeparator) {
		return "", ErrReservedID
	}
	return id, nil
}

func maxNodeIDSize() int {
	if val := os.Getenv(EnvMaxNodeIDSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxNodeIDSize
}
