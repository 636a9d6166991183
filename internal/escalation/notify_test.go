package escalation

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authoritymodels "github.com/IncharaS06/vital/internal/api/authority/models"
	issuemodels "github.com/IncharaS06/vital/internal/api/issue/models"
)

func TestBuildEscalationMail(t *testing.T) {
	issue := issuemodels.Issue{
		ID:       primitive.NewObjectID(),
		Title:    "Overflowing drain near school",
		Category: "sanitation",
		Jurisdiction: issuemodels.Jurisdiction{
			PanchayatID: "p-102",
			Taluk:       "Madhugiri",
			District:    "Tumakuru",
		},
	}

	mail := BuildEscalationMail(&issue, authoritymodels.RolePDO, ReasonSLABreached, "http://vital.test/")

	wantSubject := "VITAL: Escalation (PDO) — " + issue.ID.Hex()
	if mail.Subject != wantSubject {
		t.Errorf("subject = %q, want %q", mail.Subject, wantSubject)
	}

	for _, fragment := range []string{
		"Escalation &rarr; PDO",
		"Reason: " + ReasonSLABreached,
		issue.ID.Hex(),
		"Overflowing drain near school",
		"Tumakuru",
		"Madhugiri",
		"p-102",
		`href="http://vital.test/issues/` + issue.ID.Hex() + `"`,
		"This is an automated email from VITAL.",
	} {
		if !strings.Contains(mail.HTML, fragment) {
			t.Errorf("body missing %q", fragment)
		}
	}
}

func TestBuildEscalationMail_EscapesAndOmits(t *testing.T) {
	issue := issuemodels.Issue{
		ID:    primitive.NewObjectID(),
		Title: `Pipe burst <near> "market"`,
	}

	mail := BuildEscalationMail(&issue, authoritymodels.RoleTDO, ReasonManualEscalated, "")

	if strings.Contains(mail.HTML, "<near>") {
		t.Error("title must be HTML-escaped")
	}
	if !strings.Contains(mail.HTML, "Pipe burst &lt;near&gt;") {
		t.Error("escaped title missing from body")
	}
	if strings.Contains(mail.HTML, "Category") {
		t.Error("empty category row should be omitted")
	}
	if strings.Contains(mail.HTML, "Open issue") {
		t.Error("action link should be omitted without a frontend URL")
	}
}
