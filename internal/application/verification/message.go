package verification

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-verify-api/internal/domain"
)

const (
	emailSubject       = "Verify your email"
	emailContentPrefix = "Click the link to verify your email: "
)

// emailPayload is the wire contract of the email sender service.
type emailPayload struct {
	RequestID    string   `json:"requestId"`
	EmailSubject string   `json:"emailSubject"`
	ReceiverList []string `json:"receiverList"`
	CCList       []string `json:"ccList"`
	BCCList      []string `json:"bccList"`
	EmailContent string   `json:"emailContent"`
}

// smsPayload is the wire contract of the SMS sender service.
type smsPayload struct {
	RequestID string `json:"requestId"`
	MobileNo  string `json:"mobileNo"`
	Content   string `json:"content"`
}

// BuildLink returns <base>/verify-<channel>?token=<token>.
func BuildLink(base string, channel domain.Channel, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + "/verify-" + channel.Slug())
	if err != nil {
		return "", fmt.Errorf("parse link base %q: %w", base, err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func otpContent(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your OTP is %s. Please use this within %d minutes. ", code, int64(ttl/time.Minute))
}

// encodeNotification serializes n into the payload expected on its channel's topic.
func encodeNotification(n domain.NotificationRequest) ([]byte, error) {
	switch n.Channel {
	case domain.ChannelEmail:
		return json.Marshal(emailPayload{
			RequestID:    n.ID,
			EmailSubject: n.Subject,
			ReceiverList: []string{n.Recipient},
			CCList:       []string{},
			BCCList:      []string{},
			EmailContent: n.Content,
		})
	case domain.ChannelMobile:
		return json.Marshal(smsPayload{
			RequestID: n.ID,
			MobileNo:  n.Recipient,
			Content:   n.Content,
		})
	default:
		return nil, fmt.Errorf("no payload format for channel %q", n.Channel)
	}
}
