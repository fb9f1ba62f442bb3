package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/service"
)

// parseShift validates a user-supplied key: an integer in [-31, 31].
func parseShift(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: --shift is required", service.ErrInvalidShift)
	}
	n, err := strconv.Atoi(s)
	if err != nil || !cipher.ValidShift(n) {
		return 0, fmt.Errorf("%w: got %q", service.ErrInvalidShift, s)
	}
	return n, nil
}
