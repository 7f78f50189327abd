package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"guestdesk-backend/internal/db"
	"guestdesk-backend/internal/model"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func pushResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, newTestDB(t), &webpush.Options{})

	wp.Dispatch("p1")

	select {
	case job := <-wp.jobs:
		assert.Equal(t, "p1", job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_SendsCleaningNotice(t *testing.T) {
	gormDB := newTestDB(t)

	property := model.Property{ID: "p1", Name: "Villa Sol"}
	require.NoError(t, gormDB.Create(&property).Error)
	subscription := model.PushSubscription{
		Endpoint:   "https://push.example.com/abc",
		P256DH:     "key",
		Auth:       "auth",
		Properties: []*model.Property{&property},
	}
	require.NoError(t, gormDB.Create(&subscription).Error)

	sent := make(chan []byte, 1)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://push.example.com/abc", sub.Endpoint)
			sent <- payload
			return pushResponse(http.StatusCreated), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch("p1")

	select {
	case payload := <-sent:
		assert.Contains(t, string(payload), "Villa Sol")
		assert.Contains(t, string(payload), "needs cleaning")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification to be sent")
	}
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	gormDB := newTestDB(t)

	property := model.Property{ID: "p1", Name: "Villa Sol"}
	require.NoError(t, gormDB.Create(&property).Error)
	subscription := model.PushSubscription{
		Endpoint:   "https://push.example.com/expired",
		P256DH:     "key",
		Auth:       "auth",
		Properties: []*model.Property{&property},
	}
	require.NoError(t, gormDB.Create(&subscription).Error)

	sent := make(chan struct{}, 1)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			sent <- struct{}{}
			return pushResponse(http.StatusGone), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch("p1")

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification to be sent")
	}

	// Deletion runs after the send; give the worker a moment.
	assert.Eventually(t, func() bool {
		var count int64
		gormDB.Model(&model.PushSubscription{}).
			Where("endpoint = ?", "https://push.example.com/expired").
			Count(&count)
		return count == 0
	}, 2*time.Second, 50*time.Millisecond)
}

func TestWorkerPool_NoSubscriptions(t *testing.T) {
	gormDB := newTestDB(t)

	called := false
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			called = true
			return pushResponse(http.StatusCreated), nil
		},
	}

	wp.sendNotificationsForProperty(context.Background(), "nobody-watching")
	assert.False(t, called)
}
