package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go"
)

const DefaultFeedChannel = "events-feed"

// FeedStatus describes how a feed load ended.
type FeedStatus struct {
	Origin  string    `json:"origin"` // live or fallback
	Records int       `json:"records"`
	Notice  string    `json:"notice,omitempty"`
	At      time.Time `json:"at"`
}

type FeedNotifier interface {
	PublishFeedStatus(ctx context.Context, fs FeedStatus) error
}

type ApplicantNotifier interface {
	NotifyApplicant(ctx context.Context, requestID string, message map[string]any) error
}

// PubNubNotifier publishes feed outcomes and organizer review messages.
type PubNubNotifier struct {
	PubNub      *pubnub.PubNub
	feedChannel string
}

func NewPubNubNotifier(pn *pubnub.PubNub, feedChannel string) *PubNubNotifier {
	if feedChannel == "" {
		feedChannel = DefaultFeedChannel
	}
	return &PubNubNotifier{PubNub: pn, feedChannel: feedChannel}
}

func (n *PubNubNotifier) PublishFeedStatus(_ context.Context, fs FeedStatus) error {
	return n.publish(n.feedChannel, map[string]any{
		"type":    "feed_status",
		"origin":  fs.Origin,
		"records": fs.Records,
		"notice":  fs.Notice,
		"at":      fs.At.Unix(),
	})
}

func (n *PubNubNotifier) NotifyApplicant(_ context.Context, requestID string, message map[string]any) error {
	return n.publish(fmt.Sprintf("organizer-request-%s", requestID), message)
}

func (n *PubNubNotifier) publish(channel string, message map[string]any) error {
	_, st, err := n.PubNub.Publish().
		Channel(channel).
		Message(message).
		Execute()
	if err != nil {
		slog.Error("PubNub publish failed", "channel", channel, "status_code", st.StatusCode, "error", err)
		return err
	}
	return nil
}
