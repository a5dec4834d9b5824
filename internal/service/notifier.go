package service

import "fmt"

// Notifier covers the transactional mails the auth flows produce. Callers
// decide per flow whether a delivery error propagates or is only logged.
type Notifier interface {
	SendVerificationEmail(email, code string) error
	SendWelcomeEmail(email, name string) error
	SendPasswordResetEmail(email, resetURL string) error
	SendResetSuccessEmail(email string) error
}

type mailNotifier struct {
	sender EmailSender
}

func NewMailNotifier(sender EmailSender) Notifier {
	return &mailNotifier{sender: sender}
}

func (n *mailNotifier) SendVerificationEmail(email, code string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	return n.sender.Send(email, "Verify your email", body)
}

func (n *mailNotifier) SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf("Hi %s, your email address has been verified. Welcome aboard!", name)
	return n.sender.Send(email, "Welcome", body)
}

func (n *mailNotifier) SendPasswordResetEmail(email, resetURL string) error {
	body := fmt.Sprintf("To reset your password, open the link below within 1 hour:\n%s", resetURL)
	return n.sender.Send(email, "Password reset request", body)
}

func (n *mailNotifier) SendResetSuccessEmail(email string) error {
	return n.sender.Send(email, "Password reset success", "Your password has been changed.")
}
