package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEmergencyAlert(contactEmail, userName, userEmail string, at time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendEmergencyAlert notifies a user's registered emergency contact after a
// severe-crisis message. Best effort: the caller logs failures and continues.
func (s *emailService) SendEmergencyAlert(contactEmail, userName, userEmail string, at time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", contactEmail)
	m.SetHeader("Subject", fmt.Sprintf("MindMate: %s may need your support", userName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Someone you care about may need support</h2>
			<p><strong>%s</strong> (%s) listed you as their emergency contact on MindMate, a student mental-health app.</p>
			<p>At %s they sent a message that our safety system flagged as a possible crisis. We showed them crisis resources right away, and we are reaching out to you because a familiar voice can make a real difference.</p>
			<p>Please consider checking in with them soon — a call or a visit is best.</p>
			<p>If you believe they are in immediate danger, call <strong>911</strong>. The Suicide &amp; Crisis Lifeline is available 24/7 at <strong>988</strong>.</p>
		</div>
	`, userName, userEmail, at.Format("Mon, Jan 2 2006 at 3:04 PM"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send emergency alert to %s: %v\n", contactEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Emergency alert sent to %s\n", contactEmail)
	return nil
}
