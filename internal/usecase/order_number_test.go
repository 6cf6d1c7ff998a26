package usecase_test

import (
	"regexp"
	"testing"
	"time"

	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-(\d+)-[0-9A-Z]{5}$`)

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	n := usecase.NewOrderNumber(now)

	m := orderNumberPattern.FindStringSubmatch(n)
	if m == nil {
		t.Fatalf("unexpected format: %q", n)
	}
	assert.Equal(t, "1773570600000", m[1])
}

func TestNewOrderNumber_SuffixVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[usecase.NewOrderNumber(now)] = true
	}
	// 同一ミリ秒でもサフィックスでほぼ衝突しない
	assert.Greater(t, len(seen), 1)
}
