package livekit

import (
	"context"
	"fmt"
	"time"

	"github.com/livekit/protocol/auth"
	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// Capture is an exclusively-owned media handle for one interview session.
// Stop tears down the backing media room; the session layer guarantees it is
// called at most once.
type Capture struct {
	RoomName  string
	JoinToken string
	JoinURL   string

	stop func(ctx context.Context) error
}

// NewCapture wraps an externally managed media handle
func NewCapture(roomName, joinToken, joinURL string, stop func(ctx context.Context) error) *Capture {
	return &Capture{
		RoomName:  roomName,
		JoinToken: joinToken,
		JoinURL:   joinURL,
		stop:      stop,
	}
}

// Stop releases the capture. Errors are returned for logging but the
// session treats release as best-effort.
func (c *Capture) Stop(ctx context.Context) error {
	if c.stop == nil {
		return nil
	}
	return c.stop(ctx)
}

// Provider acquires media capture for a session
type Provider interface {
	Acquire(ctx context.Context, sessionName, identity string) (*Capture, error)
}

// realProvider backs captures with a LiveKit media server
type realProvider struct {
	roomClient *lksdk.RoomServiceClient
	apiKey     string
	apiSecret  string
	url        string
}

// NewProvider creates a capture provider. With useMock set, captures are
// issued without a media server so sessions work in development and tests.
func NewProvider(url, apiKey, apiSecret string, useMock bool) Provider {
	if useMock {
		return &mockProvider{url: url}
	}
	return &realProvider{
		roomClient: lksdk.NewRoomServiceClient(url, apiKey, apiSecret),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		url:        url,
	}
}

// Acquire creates a media room and a join token for the candidate
func (p *realProvider) Acquire(ctx context.Context, sessionName, identity string) (*Capture, error) {
	_, err := p.roomClient.CreateRoom(ctx, &livekit.CreateRoomRequest{
		Name:             sessionName,
		MaxParticipants:  2,
		EmptyTimeout:     300,
		DepartureTimeout: 30,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media room: %w", err)
	}

	token, err := p.joinToken(sessionName, identity)
	if err != nil {
		// Tear the room back down so a failed acquisition leaves nothing behind.
		_, _ = p.roomClient.DeleteRoom(ctx, &livekit.DeleteRoomRequest{Room: sessionName})
		return nil, err
	}

	return &Capture{
		RoomName:  sessionName,
		JoinToken: token,
		JoinURL:   p.url,
		stop: func(ctx context.Context) error {
			_, err := p.roomClient.DeleteRoom(ctx, &livekit.DeleteRoomRequest{Room: sessionName})
			if err != nil {
				return fmt.Errorf("failed to delete media room: %w", err)
			}
			return nil
		},
	}, nil
}

func (p *realProvider) joinToken(roomName, identity string) (string, error) {
	canPublish := true
	canSubscribe := true

	at := auth.NewAccessToken(p.apiKey, p.apiSecret)
	grant := &auth.VideoGrant{
		RoomJoin:     true,
		Room:         roomName,
		CanPublish:   &canPublish,
		CanSubscribe: &canSubscribe,
	}

	at.AddGrant(grant).
		SetIdentity(identity).
		SetValidFor(4 * time.Hour)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to generate join token: %w", err)
	}

	return token, nil
}

// mockProvider issues captures without a media server
type mockProvider struct {
	url string
}

func (p *mockProvider) Acquire(_ context.Context, sessionName, identity string) (*Capture, error) {
	return &Capture{
		RoomName:  sessionName,
		JoinToken: fmt.Sprintf("mock-token-%s-%s", sessionName, identity),
		JoinURL:   p.url,
		stop: func(context.Context) error {
			return nil
		},
	}, nil
}
