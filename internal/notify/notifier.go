// Package notify turns confirmed bookings into customer- and operator-facing
// messages. Delivery is best-effort: a failed notification is logged and
// never rolls back or blocks the booking it describes.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// Notifier composes and dispatches booking notifications.
type Notifier struct {
	mailer        Mailer
	operatorEmail string
	log           Logger
}

func NewNotifier(mailer Mailer, operatorEmail string, log Logger) *Notifier {
	return &Notifier{
		mailer:        mailer,
		operatorEmail: operatorEmail,
		log:           log,
	}
}

// BookingConfirmed notifies both the customer and the operator about a newly
// persisted booking. Each delivery failure is logged independently; neither
// affects the other or the booking itself.
func (n *Notifier) BookingConfirmed(ctx context.Context, b *domain.Booking) {
	summary := composeSummary(b)

	customerSubject := fmt.Sprintf("Focus Space 預約確認 - %s", b.BookingNumber)
	customerBody := fmt.Sprintf("%s 您好，\n\n您的預約已成立。\n\n%s\n如需變更請與我們聯繫。\n\nFocus Space 團隊",
		b.CustomerName, summary)

	if err := n.mailer.Send(ctx, b.CustomerEmail, customerSubject, customerBody); err != nil {
		n.log.Error("Notify: customer mail failed for booking=%s: %v", b.BookingNumber, err)
	} else {
		n.log.Info("Notify: customer mail sent for booking=%s", b.BookingNumber)
	}

	if n.operatorEmail == "" {
		return
	}

	operatorSubject := fmt.Sprintf("新預約 %s (%s)", b.BookingNumber, b.Type)
	operatorBody := fmt.Sprintf("新預約成立。\n\n%s電話：%s\nEmail：%s\n",
		summary, b.CustomerPhone, b.CustomerEmail)

	if err := n.mailer.Send(ctx, n.operatorEmail, operatorSubject, operatorBody); err != nil {
		n.log.Error("Notify: operator mail failed for booking=%s: %v", b.BookingNumber, err)
	} else {
		n.log.Info("Notify: operator mail sent for booking=%s", b.BookingNumber)
	}
}

func composeSummary(b *domain.Booking) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "預約編號：%s\n", b.BookingNumber)

	switch b.Type {
	case domain.TypeCourse:
		if b.CourseName != nil {
			fmt.Fprintf(&sb, "課程：%s\n", *b.CourseName)
		}
		if b.BookingDate != nil {
			fmt.Fprintf(&sb, "日期：%s\n", b.BookingDate.Format(domain.DateFormat))
		}
		if !b.StartTime.IsZero() {
			fmt.Fprintf(&sb, "時段：%s-%s\n", b.StartTime, b.EndTime)
		}
		fmt.Fprintf(&sb, "人數：%d\n", b.ParticipantCount)
		fmt.Fprintf(&sb, "費用：NT$%.0f\n", b.TotalPrice)
	case domain.TypeTrial:
		sb.WriteString("類型：場館體驗\n")
		if b.PreferredDate != nil {
			fmt.Fprintf(&sb, "希望日期：%s\n", b.PreferredDate.Format(domain.DateFormat))
		}
		if !b.PreferredTime.IsZero() {
			fmt.Fprintf(&sb, "希望時段：%s\n", b.PreferredTime)
		}
	}

	return sb.String()
}
