// Package automation contiene los DTOs del endpoint de automatización.
package automation

// WelcomeRequest es el body de POST /api/automation/welcome-email.
type WelcomeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// WelcomeResponse es la respuesta del endpoint.
type WelcomeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Mensajes del endpoint.
const (
	MessageSent   = "Welcome email sent successfully"
	MessageLogged = "Email logged (SMTP not configured)"
	ErrorSend     = "Failed to send email"
)
