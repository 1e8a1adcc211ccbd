package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

// Template names.
const (
	TemplateVerification = "verification"
	TemplateLoginCode    = "login_code"
	TemplateResetCode    = "reset_code"
	TemplateWelcomeAdmin = "welcome_admin"
	TemplateContact      = "contact"
)

// CodeData feeds the verification, login_code and reset_code templates.
type CodeData struct {
	AppName    string
	Code       string
	TTLMinutes int
}

// WelcomeData feeds welcome_admin.
type WelcomeData struct {
	AppName   string
	FirstName string
	Email     string
	Password  string
}

// ContactData feeds contact.
type ContactData struct {
	Nom     string
	Prenom  string
	Email   string
	Objet   string
	Message string
}

// Renderer renders every template in both an HTML and a plain text form.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	h, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	t, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: h, text: t}, nil
}

// Render executes template name with data and returns both bodies.
func (r *Renderer) Render(name string, data any) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := r.html.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	return hb.String(), tb.String(), nil
}
