package views

import (
	adminController "artistsite/internal/controllers/admin"
	siteController "artistsite/internal/controllers/site"
	"artistsite/internal/models"
	"artistsite/internal/services"
	"artistsite/internal/types"
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage(mode types.ViewMode) *siteController.Page {
	eventName := "Night Fest"
	return &siteController.Page{
		Mode:       mode,
		ArtistName: "Night Howl",
		Artist: models.ArtistInfo{
			ArtistName:         "Night Howl",
			SoundcloudEmbedURL: "https://w.soundcloud.com/player/?url=x",
		},
		Socials: []models.SocialLink{{Label: "Instagram", URL: "https://instagram.com/nh"}},
		Releases: []models.Release{
			{
				BaseModel: models.BaseModel{ID: 2},
				Title:     "Second",
				ImageURL:  "/b.jpg",
				Links: []models.ReleaseLink{
					{BaseModel: models.BaseModel{ID: 1}, Platform: models.PlatformSpotify, URL: "https://s"},
					{BaseModel: models.BaseModel{ID: 2}, Platform: models.Platform("myspace"), URL: "https://m"},
				},
			},
		},
		Shows: []models.Show{
			{BaseModel: models.BaseModel{ID: 1}, Date: models.NewDate(2025, 3, 1), Venue: "The Cave", City: "Austin"},
			{BaseModel: models.BaseModel{ID: 2}, Date: models.NewDate(2025, 4, 2), Venue: "Hall", City: "Dallas", EventName: &eventName},
		},
	}
}

func render(t *testing.T, name string, binding any) *goquery.Document {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, NewEngine().Render(&out, name, binding, LayoutMain))

	doc, err := goquery.NewDocumentFromReader(&out)
	require.NoError(t, err)
	return doc
}

func TestPlatformIcon(t *testing.T) {
	for _, platform := range models.Platforms {
		assert.NotEmpty(t, PlatformIcon(platform), platform)
	}
	assert.Empty(t, PlatformIcon("myspace"))
	assert.Empty(t, PlatformIcon(""))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "March 1, 2025", FormatDate(models.NewDate(2025, 3, 1)))
	assert.Equal(t, "", FormatDate(models.Date{}))
}

func TestRender_VisitorPage(t *testing.T) {
	doc := render(t, PageIndex, NewPageData(testPage(types.ViewVisitor)))

	assert.Equal(t, "Night Howl", doc.Find("title").Text())
	assert.Equal(t, "Night Howl", doc.Find(".hero h1").Text())
	assert.Equal(t, 1, doc.Find("article.release").Length())
	assert.Equal(t, 2, doc.Find(".release-link").Length(), "unknown platform still renders its link")
	assert.Equal(t, 1, doc.Find(".release-link .icon").Length(), "unknown platform renders no icon")
	assert.Equal(t, 1, doc.Find(".soundcloud iframe").Length())

	dates := doc.Find(".show .show-date").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"March 1, 2025", "April 2, 2025"}, dates)
	assert.Equal(t, "Night Fest", doc.Find(".show").Eq(1).Find(".show-event").Text())

	assert.Equal(t, 0, doc.Find("[data-admin]").Length())
	assert.Contains(t, doc.Find(".socials a").Text(), "Instagram")
}

func TestRender_LoginPage(t *testing.T) {
	data := NewPageData(testPage(types.ViewAdminLogin))
	data.Login = &LoginForm{SupportsSignUp: true, Email: "a@b.c", Error: "Invalid login credentials"}

	doc := render(t, PageIndex, data)

	login := doc.Find(`[data-admin="login"]`)
	require.Equal(t, 1, login.Length())
	assert.Equal(t, "Admin Login", login.Find("h2").Text())
	email, _ := login.Find(`input[name="email"]`).Attr("value")
	assert.Equal(t, "a@b.c", email)
	_, hasValue := login.Find(`input[name="password"]`).Attr("value")
	assert.False(t, hasValue)
	assert.Equal(t, "Invalid login credentials", login.Find(".form-error").Text())
	assert.Equal(t, 0, doc.Find(`[data-admin="panel"]`).Length())
}

func TestRender_SecretLoginHasNoSignUp(t *testing.T) {
	data := NewPageData(testPage(types.ViewAdminLogin))
	data.Login = &LoginForm{}

	doc := render(t, PageIndex, data)

	assert.Equal(t, 0, doc.Find(".tabs").Length())
	assert.Equal(t, 0, doc.Find(`input[name="email"]`).Length())
	assert.Equal(t, 1, doc.Find(`input[name="password"]`).Length())
}

func TestRender_AdminPanelWithReleaseForm(t *testing.T) {
	page := testPage(types.ViewAdminPanel)
	state := adminController.OpenEdit(adminController.EntityRelease, 2)

	data := NewPageData(page)
	data.Panel = &adminController.Panel{
		State:     state,
		Shows:     page.Shows,
		Releases:  page.Releases,
		CanExport: true,
		ReleaseForm: &adminController.ReleaseForm{
			State:     state,
			Platforms: models.Platforms,
			Input: services.ReleaseInput{
				Title:    "Second",
				ImageURL: "/b.jpg",
				Links:    []services.LinkInput{{ID: 1, Platform: models.PlatformApple, URL: "https://a"}},
			},
			Error: types.MessageSaveFailed,
		},
	}

	doc := render(t, PageIndex, data)

	panel := doc.Find(`[data-admin="panel"]`)
	require.Equal(t, 1, panel.Length())
	assert.Equal(t, 2, panel.Find(".admin-shows li").Length())
	assert.Equal(t, 1, panel.Find("a.export").Length())

	form := panel.Find(`[data-admin="release-form"] form`)
	action, _ := form.Attr("action")
	assert.Equal(t, "/admin/releases/2", action)
	assert.Equal(t, "Edit Release", panel.Find(`[data-admin="release-form"] h3`).Text())

	selected, _ := form.Find(`select[name="link_platform"] option[selected]`).Attr("value")
	assert.Equal(t, "apple", selected)
	id, _ := form.Find(`input[name="link_id"]`).Attr("value")
	assert.Equal(t, "1", id)
	assert.Equal(t, types.MessageSaveFailed, form.Find(".form-error").Text())

	deleteAction, _ := panel.Find(".admin-releases form.delete").Attr("action")
	assert.Equal(t, "/admin/releases/2/delete", deleteAction)
	assert.Equal(t, 1, doc.Find(`[data-admin="logout"]`).Length())
}

func TestRender_ErrorAndConfigPages(t *testing.T) {
	doc := render(t, PageError, NewErrorData(types.MessageLoadFailed))
	assert.Equal(t, types.MessageLoadFailed, doc.Find(".error-message").Text())

	doc = render(t, PageConfigRequired, ErrorData{Title: "Configuration Required"})
	assert.Equal(t, "Configuration Required", doc.Find("h1").Text())
}
