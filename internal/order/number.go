package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const orderNumberPrefix = "ORD-"

// ErrSequenceOverflow means the stored suffix is all digits but does not fit
// in an int64. Restarting at 1 would collide with existing numbers.
var ErrSequenceOverflow = errors.New("order number sequence overflow")

// NextOrderNumber returns the number following last. An empty or non-numeric
// last number starts the sequence at ORD-000001.
func NextOrderNumber(last string) (string, error) {
	seq, err := parseSequence(last)
	if err != nil {
		return "", err
	}
	return FormatOrderNumber(seq + 1), nil
}

func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", orderNumberPrefix, seq)
}

func parseSequence(orderNumber string) (int64, error) {
	parts := strings.Split(orderNumber, "-")
	if len(parts) < 2 {
		return 0, nil
	}
	suffix := strings.TrimSpace(parts[1])
	n, err := strconv.ParseInt(suffix, 10, 64)
	if errors.Is(err, strconv.ErrRange) || n == 1<<63-1 {
		return 0, fmt.Errorf("%w: %q", ErrSequenceOverflow, orderNumber)
	}
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}
