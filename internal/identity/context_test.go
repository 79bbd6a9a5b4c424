package identity

import (
	"context"
	"testing"
)

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "u-123")
	if got := UserID(ctx); got != "u-123" {
		t.Errorf("UserID = %q, want %q", got, "u-123")
	}
}

func TestUserIDMissing(t *testing.T) {
	if got := UserID(context.Background()); got != "" {
		t.Errorf("UserID = %q, want empty", got)
	}
}
