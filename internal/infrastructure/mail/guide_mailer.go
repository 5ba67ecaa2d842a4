package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

const bodyTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thank you for your purchase!</h2>
  <p>Your copy of <strong>%s</strong> is ready.</p>
  <p><strong>Payment ID:</strong> %s</p>
  <p>Keep this id — it is your receipt and unlocks the download at any time.</p>
</body>
</html>`

// GuideMailer sends the post-purchase email over SMTP.
type GuideMailer struct {
	dialer  *gomail.Dialer
	from    string
	product string
}

func NewGuideMailer(host string, port int, user, password, from, product string) *GuideMailer {
	return &GuideMailer{
		dialer:  gomail.NewDialer(host, port, user, password),
		from:    from,
		product: product,
	}
}

func (m *GuideMailer) SendGuide(to, paymentID string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your %s - Thank You!", m.product))
	msg.SetBody("text/html", fmt.Sprintf(bodyTemplate, m.product, paymentID))

	return m.dialer.DialAndSend(msg)
}
