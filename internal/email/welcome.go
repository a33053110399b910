package email

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htemplate "html/template"
	ttemplate "text/template"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	welcomeHTML = htemplate.Must(htemplate.ParseFS(templatesFS, "templates/welcome.html"))
	welcomeText = ttemplate.Must(ttemplate.ParseFS(templatesFS, "templates/welcome.txt"))
)

// WelcomeSubject es el asunto fijo del email de bienvenida.
const WelcomeSubject = "Welcome to BizFlow!"

var (
	ErrTemplateRender = errors.New("email: template render failed")
	ErrMissingEmail   = errors.New("email: recipient is required")
)

// WelcomeVars variables del template de bienvenida.
type WelcomeVars struct {
	Name  string
	Email string
}

// RenderWelcome renderiza ambas versiones del email.
func RenderWelcome(vars WelcomeVars) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := welcomeHTML.Execute(&hb, vars); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	if err := welcomeText.Execute(&tb, vars); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return hb.String(), tb.String(), nil
}

// WelcomeResult indica si el email se envió o solo se logueó.
type WelcomeResult struct {
	Logged bool
}

// WelcomeService compone template + sender.
type WelcomeService struct {
	sender     Sender
	configured bool
}

// NewWelcomeService: configured=false fuerza LogSender aunque sender no sea nil.
func NewWelcomeService(sender Sender, configured bool) *WelcomeService {
	if sender == nil || !configured {
		return &WelcomeService{sender: LogSender{}, configured: false}
	}
	return &WelcomeService{sender: sender, configured: true}
}

// SendWelcome renderiza y envía (o loguea) el email de bienvenida.
func (s *WelcomeService) SendWelcome(ctx context.Context, to, name string) (WelcomeResult, error) {
	if to == "" {
		return WelcomeResult{}, ErrMissingEmail
	}
	html, text, err := RenderWelcome(WelcomeVars{Name: name, Email: to})
	if err != nil {
		return WelcomeResult{}, err
	}
	if err := s.sender.Send(ctx, to, WelcomeSubject, html, text); err != nil {
		return WelcomeResult{}, err
	}
	return WelcomeResult{Logged: !s.configured}, nil
}
