package view

import (
	"fmt"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// auditPresentation is the visual treatment of one audit type on the
// timeline.
type auditPresentation struct {
	Label string
	Icon  string
	Color string
}

var auditConfig = map[domain.AuditType]auditPresentation{
	domain.AuditDelivery:      {Label: "Delivery", Icon: "truck", Color: "audit-delivery"},
	domain.AuditSale:          {Label: "Sale", Icon: "shopping-cart", Color: "audit-sale"},
	domain.AuditPhysicalCount: {Label: "Physical Count", Icon: "clipboard-check", Color: "audit-physical"},
	domain.AuditAdjustment:    {Label: "Adjustment", Icon: "settings", Color: "audit-adjustment"},
}

// TimelineEntry is one audit rendered for the timeline tab. Sales entries are
// marked read-only: this service never dispatches sale mutations and the
// dashboard must not offer to.
type TimelineEntry struct {
	StockAuditID int64  `json:"stock_audit_id"`
	TypeLabel    string `json:"type_label"`
	TypeIcon     string `json:"type_icon"`
	TypeColor    string `json:"type_color"`
	ReadOnly     bool   `json:"read_only"`
	QtyChange    string `json:"qty_change"`
	StockBefore  int    `json:"stock_before"`
	StockAfter   int    `json:"stock_after"`
	Batch        string `json:"batch"`
	By           string `json:"by"`
	Reference    string `json:"reference,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// TimelineView is the audit timeline tab.
type TimelineView struct {
	Entries []TimelineEntry `json:"entries"`
	Empty   bool            `json:"empty"`
}

// Timeline projects the audit trail, newest-first order preserved from the
// upstream. Unknown audit types borrow the adjustment treatment.
func Timeline(audits []domain.Audit) TimelineView {
	entries := make([]TimelineEntry, 0, len(audits))
	for _, a := range audits {
		cfg, ok := auditConfig[a.AuditType]
		if !ok {
			cfg = auditConfig[domain.AuditAdjustment]
		}
		entries = append(entries, TimelineEntry{
			StockAuditID: a.StockAuditID,
			TypeLabel:    cfg.Label,
			TypeIcon:     cfg.Icon,
			TypeColor:    cfg.Color,
			ReadOnly:     a.AuditType == domain.AuditSale,
			QtyChange:    signedQty(a.QtyChange),
			StockBefore:  a.StockBefore,
			StockAfter:   a.StockAfter,
			Batch:        a.Batch,
			By:           a.CreatedByUserName,
			Reference:    formatReference(a.ReferenceType, a.ReferenceNo),
			Remarks:      deref(a.Remarks),
			Timestamp:    formatTimestamp(a.CreatedAt),
		})
	}
	return TimelineView{Entries: entries, Empty: len(entries) == 0}
}

// signedQty renders a quantity change with an explicit sign on increases.
func signedQty(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// formatReference joins reference type and number ("GRN: INV-1001"). Audits
// without a reference number render nothing, even when a type is present.
func formatReference(refType, refNo *string) string {
	if refNo == nil || *refNo == "" {
		return ""
	}
	if refType == nil || *refType == "" {
		return *refNo
	}
	return fmt.Sprintf("%s: %s", *refType, *refNo)
}

func formatTimestamp(createdAt string) string {
	t, err := domain.ParseExpiry(createdAt)
	if err != nil {
		return "N/A"
	}
	return t.Format(timestampLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
