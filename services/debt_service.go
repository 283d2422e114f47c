package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
)

// DebtItem is one unpaid liability, normalized across its three sources.
type DebtItem struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"` // stream, voice or edit
	Title  string    `json:"title"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

type DebtSummary struct {
	Payee models.PayeeRef `json:"payee"`
	Items []DebtItem      `json:"items"`
	Total float64         `json:"total"`
}

// GetDebtSummary unifies every unpaid liability owed to one payee into an
// oldest-first list with its sum. Pure read; nothing is mutated.
func GetDebtSummary(payee models.PayeeRef) (*DebtSummary, error) {
	if err := payee.Validate(); err != nil {
		return nil, apperrors.Validation("%v", err)
	}
	if _, err := lookupPayee(database.DB, payee); err != nil {
		return nil, err
	}
	return collectDebt(payee)
}

func collectDebt(payee models.PayeeRef) (*DebtSummary, error) {
	summary := &DebtSummary{Payee: payee, Items: []DebtItem{}}

	if payee.Kind == models.PayeeStreamer {
		var streams []models.Stream
		err := database.DB.
			Where("streamer_id = ? AND payment_status = ?", payee.ID, models.StreamPaymentPending).
			Find(&streams).Error
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		for _, s := range streams {
			summary.Items = append(summary.Items, DebtItem{
				ID: s.ID, Type: "stream", Title: s.Title, Amount: s.Amount, Date: s.StreamDate,
			})
		}
	}

	// Voice liabilities attach to whichever of voice actor or streamer the
	// entry names.
	if payee.Kind == models.PayeeVoiceActor || payee.Kind == models.PayeeStreamer {
		attrColumn := "voice_actor_id"
		if payee.Kind == models.PayeeStreamer {
			attrColumn = "streamer_id"
		}
		var entries []models.ContentRegistryEntry
		err := database.DB.
			Where(attrColumn+" = ? AND status = ? AND voice_price > 0 AND voice_paid = false",
				payee.ID, models.EntryPublished).
			Find(&entries).Error
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		for _, e := range entries {
			summary.Items = append(summary.Items, DebtItem{
				ID: e.ID, Type: "voice", Title: e.Title, Amount: *e.VoicePrice, Date: e.CreatedAt,
			})
		}
	}

	if payee.Kind == models.PayeeTeamMember {
		var entries []models.ContentRegistryEntry
		err := database.DB.
			Where("editor_id = ? AND status = ? AND edit_price > 0 AND edit_paid = false",
				payee.ID, models.EntryPublished).
			Find(&entries).Error
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		for _, e := range entries {
			summary.Items = append(summary.Items, DebtItem{
				ID: e.ID, Type: "edit", Title: e.Title, Amount: *e.EditPrice, Date: e.CreatedAt,
			})
		}
	}

	sort.SliceStable(summary.Items, func(i, j int) bool {
		return summary.Items[i].Date.Before(summary.Items[j].Date)
	})
	for _, item := range summary.Items {
		summary.Total += item.Amount
	}
	return summary, nil
}

// PayeeDebt is one row of the portfolio overview.
type PayeeDebt struct {
	Payee     models.PayeeRef `json:"payee"`
	Name      string          `json:"name"`
	Total     float64         `json:"total"`
	ItemCount int             `json:"item_count"`
}

// GetPortfolioSummary runs the per-payee aggregation for every payee of
// every kind and ranks the results by total owed, largest first. The
// hideSettled toggle only filters zero totals; it never changes the
// underlying aggregation.
func GetPortfolioSummary(hideSettled bool) ([]PayeeDebt, error) {
	var rows []PayeeDebt

	var streamers []models.Streamer
	if err := database.DB.Find(&streamers).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, s := range streamers {
		row, err := portfolioRow(models.PayeeRef{Kind: models.PayeeStreamer, ID: s.ID}, s.Name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	var voiceActors []models.VoiceActor
	if err := database.DB.Find(&voiceActors).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, v := range voiceActors {
		row, err := portfolioRow(models.PayeeRef{Kind: models.PayeeVoiceActor, ID: v.ID}, v.Name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	var members []models.TeamMember
	if err := database.DB.Find(&members).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, m := range members {
		row, err := portfolioRow(models.PayeeRef{Kind: models.PayeeTeamMember, ID: m.ID}, m.Name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	var creators []models.ContentCreator
	if err := database.DB.Find(&creators).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, c := range creators {
		row, err := portfolioRow(models.PayeeRef{Kind: models.PayeeContentCreator, ID: c.ID}, c.Name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if hideSettled {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Total > 0 {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows, nil
}

func portfolioRow(ref models.PayeeRef, name string) (PayeeDebt, error) {
	summary, err := collectDebt(ref)
	if err != nil {
		return PayeeDebt{}, err
	}
	return PayeeDebt{
		Payee:     ref,
		Name:      name,
		Total:     summary.Total,
		ItemCount: len(summary.Items),
	}, nil
}
