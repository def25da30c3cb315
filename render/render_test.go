package render

import (
	"testing"
	"time"

	"lexassist-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPagePublicShowsTopNav(t *testing.T) {
	html := Page("AI-Assisted Legal Services", LandingBody(), nil, false)

	assert.Contains(t, html, `class="topnav"`)
	assert.NotContains(t, html, `class="sidebar"`)
	assert.Contains(t, html, "Sign In")
}

func TestPageDashboardShowsSidebar(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Asha", Role: models.RoleLitigant}
	html := Page("Dashboard", "<p>body</p>", user, true)

	assert.Contains(t, html, `class="sidebar"`)
	assert.NotContains(t, html, `class="topnav"`)
	assert.Contains(t, html, "Asha")
	assert.NotContains(t, html, "All Cases")
}

func TestPageShowsAllCasesLinkForLawyerAndAdmin(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleLawyer, models.RoleAdmin} {
		user := &models.User{ID: uuid.New(), Name: "Asha", Role: role}
		html := Page("Dashboard", "", user, true)
		assert.Contains(t, html, "All Cases", "role %s should see the all-cases link", role)
	}
}

func TestSanitizeUserHTMLStripsScript(t *testing.T) {
	dirty := `Hello <script>alert("x")</script><b>world</b>`
	clean := SanitizeUserHTML(dirty)

	assert.NotContains(t, clean, "<script>")
	assert.NotContains(t, clean, "alert")
	assert.Contains(t, clean, "<b>world</b>")
}

func TestCaseListBodySanitizesUserContent(t *testing.T) {
	hearing := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	cases := []*models.Case{
		{
			ID:          uuid.New(),
			Summary:     `Deposit dispute <script>steal()</script>`,
			Status:      models.StatusHearingScheduled,
			HearingDate: &hearing,
			Notes: models.CaseNotes{
				{Text: `<img src=x onerror=alert(1)>note one`, CreatedAt: time.Now()},
			},
		},
	}

	html := CaseListBody(cases)
	assert.Contains(t, html, "Deposit dispute")
	assert.NotContains(t, html, "steal()")
	assert.NotContains(t, html, "onerror")
	assert.Contains(t, html, "note one")
	assert.Contains(t, html, "14 Sep 2026")
}

func TestCaseListBodyEmptyState(t *testing.T) {
	html := CaseListBody(nil)
	assert.Contains(t, html, "No cases yet")
}
