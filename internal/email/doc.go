// Package email envía el email de bienvenida de BizFlow.
//
// Con SMTP configurado usa SMTPSender (go-mail). Sin usuario SMTP el mensaje
// completo se loguea con LogSender y la operación se considera exitosa.
//
// Uso:
//
//	svc := email.NewWelcomeService(sender, configured)
//	res, err := svc.SendWelcome(ctx, "ada@example.com", "Ada")
//	if res.Logged { ... }
package email
