package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
	"github.com/olehks/content_studio/notifications"
	"github.com/olehks/content_studio/services"
)

// SendOutstandingDebtDigest mails every admin a morning summary of who is
// owed what plus payment requests that have sat PENDING for over a week.
func SendOutstandingDebtDigest() {
	log.Println("Running job: SendOutstandingDebtDigest...")

	rows, err := services.GetPortfolioSummary(true)
	if err != nil {
		log.Printf("Error aggregating portfolio for digest: %v", err)
		return
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	var staleRequests []models.PaymentRequest
	err = database.DB.
		Where("status = ? AND created_at < ?", models.RequestPending, weekAgo).
		Order("created_at asc").
		Find(&staleRequests).Error
	if err != nil {
		log.Printf("Error checking for stale payment requests: %v", err)
		return
	}

	if len(rows) == 0 && len(staleRequests) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("<h1>Outstanding Debt Digest</h1>")
	if len(rows) > 0 {
		b.WriteString("<h2>Who is owed what</h2><ul>")
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("<li>%s (%s): %.2f across %d item(s)</li>",
				row.Name, row.Payee.Kind, row.Total, row.ItemCount))
		}
		b.WriteString("</ul>")
	}
	if len(staleRequests) > 0 {
		b.WriteString("<h2>Payment requests pending over a week</h2><ul>")
		for _, r := range staleRequests {
			b.WriteString(fmt.Sprintf("<li>%s: %.2f — %s (since %s)</li>",
				r.Type, r.Amount, r.Description, r.CreatedAt.Format("2006-01-02")))
		}
		b.WriteString("</ul>")
	}

	var admins []models.User
	if err := database.DB.Where("role = ? AND is_active = true", models.RoleAdmin).Find(&admins).Error; err != nil {
		log.Printf("Error loading admins for digest: %v", err)
		return
	}
	for _, admin := range admins {
		go notifications.SendEmail(admin.FullName, admin.Email, "Daily Outstanding Debt Digest", b.String())
	}
}
