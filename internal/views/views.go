package views

import (
	adminController "artistsite/internal/controllers/admin"
	siteController "artistsite/internal/controllers/site"
	"artistsite/internal/models"
	"artistsite/internal/types"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

const (
	LayoutMain         = "layouts/main"
	PageIndex          = "index"
	PageError          = "error"
	PageConfigRequired = "config_required"
)

// DisplayDateLayout matches the long US date shown in the tour list.
const DisplayDateLayout = "January 2, 2006"

var platformIcons = map[models.Platform]string{
	models.PlatformSpotify:    "icon-spotify",
	models.PlatformApple:      "icon-apple",
	models.PlatformSoundcloud: "icon-soundcloud",
	models.PlatformYoutube:    "icon-youtube",
	models.PlatformBeatport:   "icon-beatport",
}

// PageData is the binding for the index template.
type PageData struct {
	Title string
	Page  *siteController.Page
	Login *LoginForm
	Panel *adminController.Panel
	Year  int
}

// LoginForm backs the admin sign-in/sign-up dialog. The password is never
// echoed back into it.
type LoginForm struct {
	SignUp         bool
	SupportsSignUp bool
	Email          string
	Error          string
	Message        string
}

type ErrorData struct {
	Title   string
	Message string
	Year    int
}

func NewPageData(page *siteController.Page) PageData {
	return PageData{
		Title: page.ArtistName,
		Page:  page,
		Year:  time.Now().Year(),
	}
}

func (d PageData) ShowLogin() bool {
	return d.Page != nil && d.Page.Mode == types.ViewAdminLogin && d.Login != nil
}

func (d PageData) ShowPanel() bool {
	return d.Page != nil && d.Page.Mode == types.ViewAdminPanel && d.Panel != nil
}

func NewErrorData(message string) ErrorData {
	return ErrorData{Title: "Unavailable", Message: message, Year: time.Now().Year()}
}

// NewEngine returns the html engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"platformIcon":  PlatformIcon,
		"platformLabel": PlatformLabel,
		"formatDate":    FormatDate,
		"eventName":     EventName,
		"linkRows":      LinkRows,
	}
}

// PlatformIcon returns the icon class for a platform, or "" for a tag
// outside the supported set.
func PlatformIcon(platform models.Platform) string {
	return platformIcons[platform]
}

func PlatformLabel(platform models.Platform) string {
	return platform.Label()
}

func FormatDate(date models.Date) string {
	if date.IsZero() {
		return ""
	}
	return date.Time().Format(DisplayDateLayout)
}

func EventName(show models.Show) string {
	if show.EventName == nil {
		return ""
	}
	return *show.EventName
}

// LinkRow is one editable link line of the release form.
type LinkRow struct {
	Index     int
	ID        int64
	Platform  models.Platform
	URL       string
	Platforms []models.Platform
}

func LinkRows(form *adminController.ReleaseForm) []LinkRow {
	if form == nil {
		return nil
	}

	rows := make([]LinkRow, 0, len(form.Input.Links))
	for i, link := range form.Input.Links {
		rows = append(rows, LinkRow{
			Index:     i,
			ID:        link.ID,
			Platform:  link.Platform,
			URL:       link.URL,
			Platforms: form.Platforms,
		})
	}
	return rows
}
