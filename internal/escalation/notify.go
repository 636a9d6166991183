package escalation

import (
	"fmt"
	"html"
	"strings"

	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
)

// EscalationMail is the rendered notification for the authority receiving an
// escalated issue.
type EscalationMail struct {
	Subject string
	HTML    string
}

// BuildEscalationMail renders the email sent to the authority an issue just
// escalated to. frontendURL, when set, is used to build the dashboard link.
func BuildEscalationMail(issue *issuemodels.Issue, toRole, reason, frontendURL string) EscalationMail {
	label := RoleLabel(toRole)
	issueID := issue.ID.Hex()
	subject := fmt.Sprintf("VITAL: Escalation (%s) — %s", label, issueID)

	var b strings.Builder
	b.WriteString(`<div style="color:#163a26;font-size:14px;line-height:1.5">`)
	fmt.Fprintf(&b, `<div style="font-weight:900;margin-bottom:8px">Escalation &rarr; %s</div>`, html.EscapeString(label))
	fmt.Fprintf(&b, `<div style="margin-bottom:10px">Reason: %s</div>`, html.EscapeString(reason))

	b.WriteString(`<table style="border-collapse:collapse;margin-bottom:10px">`)
	writeRow(&b, "Issue ID", issueID)
	writeRow(&b, "Title", issue.Title)
	if issue.Category != "" {
		writeRow(&b, "Category", issue.Category)
	}
	if issue.Jurisdiction.District != "" {
		writeRow(&b, "District", issue.Jurisdiction.District)
	}
	if issue.Jurisdiction.Taluk != "" {
		writeRow(&b, "Taluk", issue.Jurisdiction.Taluk)
	}
	if issue.Jurisdiction.PanchayatID != "" {
		writeRow(&b, "Panchayat", issue.Jurisdiction.PanchayatID)
	}
	b.WriteString(`</table>`)

	if frontendURL != "" {
		actionURL := fmt.Sprintf("%s/issues/%s", strings.TrimRight(frontendURL, "/"), issueID)
		fmt.Fprintf(&b, `<div><a href="%s" style="display:inline-block;padding:8px 14px;background:#1b5e20;color:#ffffff;border-radius:4px;text-decoration:none">Open issue</a></div>`, actionURL)
	}

	b.WriteString(`<div style="margin-top:14px;color:#6b7f70;font-size:12px">This is an automated email from VITAL.</div>`)
	b.WriteString(`</div>`)

	return EscalationMail{Subject: subject, HTML: b.String()}
}

// BuildReporterMail renders the status email for the villager whose issue
// just moved up a tier.
func BuildReporterMail(issue *issuemodels.Issue, toRole, frontendURL string) EscalationMail {
	label := RoleLabel(toRole)
	issueID := issue.ID.Hex()
	subject := fmt.Sprintf("VITAL: Your issue was escalated to the %s — %s", label, issueID)

	var b strings.Builder
	b.WriteString(`<div style="color:#163a26;font-size:14px;line-height:1.5">`)
	fmt.Fprintf(&b, `<div style="margin-bottom:10px">Your issue <b>%s</b> was not resolved within its deadline and has been escalated to the <b>%s</b>.</div>`,
		html.EscapeString(issue.Title), html.EscapeString(label))

	b.WriteString(`<table style="border-collapse:collapse;margin-bottom:10px">`)
	writeRow(&b, "Issue ID", issueID)
	writeRow(&b, "Now with", label)
	b.WriteString(`</table>`)

	if frontendURL != "" {
		actionURL := fmt.Sprintf("%s/issues/%s", strings.TrimRight(frontendURL, "/"), issueID)
		fmt.Fprintf(&b, `<div><a href="%s" style="display:inline-block;padding:8px 14px;background:#1b5e20;color:#ffffff;border-radius:4px;text-decoration:none">Track your issue</a></div>`, actionURL)
	}

	b.WriteString(`<div style="margin-top:14px;color:#6b7f70;font-size:12px">This is an automated email from VITAL.</div>`)
	b.WriteString(`</div>`)

	return EscalationMail{Subject: subject, HTML: b.String()}
}

func writeRow(b *strings.Builder, key, value string) {
	fmt.Fprintf(b,
		`<tr><td style="padding:2px 12px 2px 0;color:#6b7f70">%s</td><td style="padding:2px 0">%s</td></tr>`,
		html.EscapeString(key), html.EscapeString(value))
}
