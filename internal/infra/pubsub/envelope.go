package pubsub

import (
	"encoding/json"
	"strconv"
	"time"

	"funntour/internal/domain/service"

	"github.com/pkg/errors"
)

// Attribute names set on every published account event.
const (
	AttrEventID   = "event_id"
	AttrEventType = "event_type"
	AttrUserID    = "user_id"
	AttrRequestID = "request_id"
)

// LocalSubscription names the subscription the local publisher pretends to push for.
const LocalSubscription = "projects/local/subscriptions/account-events-sub"

// PushEnvelope is the body Pub/Sub POSTs to a push subscription. The local
// publisher produces the same shape so the audit worker handles both alike.
type PushEnvelope struct {
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

// PushMessage is one delivered message. Data travels base64 encoded, which
// encoding/json does for []byte.
type PushMessage struct {
	Data        []byte            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	PublishTime time.Time         `json:"publishTime"`
	OrderingKey string            `json:"orderingKey,omitempty"`
}

// Attribute returns the named attribute, or "".
func (m *PushMessage) Attribute(name string) string {
	return m.Attributes[name]
}

// Event decodes the account event carried in Data.
func (m *PushMessage) Event() (*service.AccountEvent, error) {
	if len(m.Data) == 0 {
		return nil, errors.New("push message has no data")
	}

	var event service.AccountEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		return nil, errors.Wrap(err, "push message data is not an account event")
	}

	return &event, nil
}

// outboundMessage is an account event ready for any transport.
type outboundMessage struct {
	data        []byte
	attributes  map[string]string
	orderingKey string
}

func encodeEvent(event *service.AccountEvent) (*outboundMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	userID := strconv.FormatUint(uint64(event.UserID), 10)
	attributes := map[string]string{
		AttrEventID:   event.EventID,
		AttrEventType: event.Type,
		AttrUserID:    userID,
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return &outboundMessage{
		data:       data,
		attributes: attributes,
		// Events of one user are delivered in publish order.
		orderingKey: "user-" + userID,
	}, nil
}

// newPushEnvelope wraps msg the way a push subscription would deliver it.
func newPushEnvelope(msg *outboundMessage, messageID string, publishedAt time.Time) *PushEnvelope {
	return &PushEnvelope{
		Message: PushMessage{
			Data:        msg.data,
			Attributes:  msg.attributes,
			MessageID:   messageID,
			PublishTime: publishedAt.UTC(),
			OrderingKey: msg.orderingKey,
		},
		Subscription: LocalSubscription,
	}
}
