package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	fcm "firebase.google.com/go/v4/messaging"
	"github.com/sideshow/apns2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFCMClient struct {
	batches [][]string
	respond func(tokens []string) (*fcm.BatchResponse, error)
}

func (f *fakeFCMClient) SendEachForMulticast(_ context.Context, message *fcm.MulticastMessage) (*fcm.BatchResponse, error) {
	f.batches = append(f.batches, message.Tokens)
	return f.respond(message.Tokens)
}

func allSucceeded(tokens []string) (*fcm.BatchResponse, error) {
	resp := &fcm.BatchResponse{SuccessCount: len(tokens)}
	for range tokens {
		resp.Responses = append(resp.Responses, &fcm.SendResponse{Success: true})
	}
	return resp, nil
}

func TestFCMSender_SplitsIntoBatches(t *testing.T) {
	client := &fakeFCMClient{respond: allSucceeded}
	sender := newFCMSender(client, zap.NewNop())

	tokens := make([]string, 1200)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("token-%d", i)
	}

	invalid, err := sender.Send(context.Background(), tokens, PushNotification{Title: "t", Body: "b"}, nil)
	require.NoError(t, err)
	assert.Empty(t, invalid)
	require.Len(t, client.batches, 3)
	assert.Len(t, client.batches[0], fcmMaxBatch)
	assert.Len(t, client.batches[2], 200)
}

func TestFCMSender_RequestError(t *testing.T) {
	reqErr := errors.New("unavailable")
	client := &fakeFCMClient{respond: func([]string) (*fcm.BatchResponse, error) { return nil, reqErr }}
	sender := newFCMSender(client, zap.NewNop())

	_, err := sender.Send(context.Background(), []string{"a"}, PushNotification{}, nil)
	assert.ErrorIs(t, err, reqErr)
}

func TestFCMSender_AllTokensFailed(t *testing.T) {
	client := &fakeFCMClient{respond: func(tokens []string) (*fcm.BatchResponse, error) {
		resp := &fcm.BatchResponse{FailureCount: len(tokens)}
		for range tokens {
			resp.Responses = append(resp.Responses, &fcm.SendResponse{Error: errors.New("internal")})
		}
		return resp, nil
	}}
	sender := newFCMSender(client, zap.NewNop())

	invalid, err := sender.Send(context.Background(), []string{"a", "b"}, PushNotification{}, nil)
	assert.Error(t, err)
	assert.Empty(t, invalid)
}

type fakeAPNSClient struct {
	mu      sync.Mutex
	pushed  []string
	reasons map[string]string
}

func (f *fakeAPNSClient) PushWithContext(_ apns2.Context, n *apns2.Notification) (*apns2.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, n.DeviceToken)
	if reason, ok := f.reasons[n.DeviceToken]; ok {
		return &apns2.Response{StatusCode: 410, Reason: reason}, nil
	}
	return &apns2.Response{StatusCode: apns2.StatusSent, ApnsID: "id-" + n.DeviceToken}, nil
}

func TestApnsSender_CollectsInvalidTokens(t *testing.T) {
	client := &fakeAPNSClient{reasons: map[string]string{
		"gone": apns2.ReasonUnregistered,
		"bad":  apns2.ReasonBadDeviceToken,
	}}
	sender := newApnsSender(client, "com.gym.app", zap.NewNop())

	invalid, err := sender.Send(context.Background(), []string{"ok", "gone", "bad"},
		PushNotification{Title: "t", Body: "b"}, map[string]string{"kind": "PROMOTED_FROM_RESERVE"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"gone", "bad"}, invalid)
	assert.ElementsMatch(t, []string{"ok", "gone", "bad"}, client.pushed)
}

func TestApnsSender_AllRejected(t *testing.T) {
	client := &fakeAPNSClient{reasons: map[string]string{"a": apns2.ReasonTooManyRequests}}
	sender := newApnsSender(client, "com.gym.app", zap.NewNop())

	invalid, err := sender.Send(context.Background(), []string{"a"}, PushNotification{}, nil)
	assert.Error(t, err)
	assert.Empty(t, invalid)
}
