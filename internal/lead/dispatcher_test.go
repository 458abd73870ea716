package lead

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kartabot/kartabot/internal/admin"
)

type recordingSender struct {
	failFor map[int64]error
	sent    []int64
	texts   []string
}

func (s *recordingSender) Send(_ context.Context, chatID int64, text string) error {
	s.sent = append(s.sent, chatID)
	s.texts = append(s.texts, text)

	if err, ok := s.failFor[chatID]; ok {
		return err
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func registryWith(t *testing.T, chats ...int64) *admin.Registry {
	t.Helper()

	r := admin.NewRegistry([]string{"operator"})
	for _, chat := range chats {
		if !r.Register("operator", chat) {
			t.Fatalf("failed to register chat %d", chat)
		}
	}
	return r
}

func TestDispatcher_NoOperators(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, admin.NewRegistry(nil), testLogger())

	notified, results := d.Dispatch(context.Background(), New(SourceContact))

	assert.False(t, notified)
	assert.Empty(t, results)
	assert.Empty(t, sender.sent)
}

func TestDispatcher_FanOut(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, registryWith(t, 100, 200, 300), testLogger())

	l := New(SourceContact)
	l.Phone = "+374 99 123456"

	notified, results := d.Dispatch(context.Background(), l)

	assert.True(t, notified)
	assert.Len(t, results, 3)
	assert.Equal(t, []int64{100, 200, 300}, sender.sent)

	// Every recipient gets the same formatted text.
	for _, text := range sender.texts {
		assert.Equal(t, l.Format(), text)
	}
}

func TestDispatcher_OneFailureDoesNotBlockOthers(t *testing.T) {
	sendErr := errors.New("telegram: forbidden")
	sender := &recordingSender{failFor: map[int64]error{100: sendErr}}
	d := NewDispatcher(sender, registryWith(t, 100, 200), testLogger())

	notified, results := d.Dispatch(context.Background(), New(SourceHTTP))

	assert.True(t, notified)
	assert.Len(t, results, 2)
	assert.Equal(t, []int64{100, 200}, sender.sent)

	assert.ErrorIs(t, results[0].Err, sendErr)
	assert.NoError(t, results[1].Err)
}

func TestDispatcher_AllFailuresReportUndelivered(t *testing.T) {
	sendErr := errors.New("telegram: blocked")
	sender := &recordingSender{failFor: map[int64]error{100: sendErr, 200: sendErr}}
	d := NewDispatcher(sender, registryWith(t, 100, 200), testLogger())

	notified, results := d.Dispatch(context.Background(), New(SourceWebApp))

	assert.False(t, notified)
	assert.Len(t, results, 2)
}
