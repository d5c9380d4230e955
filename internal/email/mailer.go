package email

import (
	"fmt"
	"time"

	"conectacg_backend/internal/config"
	"conectacg_backend/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email collaborator. Callers in the lead pipeline
// and alert batch treat sends as best-effort.
type Mailer interface {
	SendLeadNotification(to string, lead *models.Lead, planName, providerName string) error
	SendPriceAlert(to string, plans []models.Plan, alert *models.PriceAlert) error
}

// SMTPMailer sends via gomail. Configured returns false when no SMTP host
// is set, in which case the lead pipeline skips the email channel.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Configured() bool {
	return m.cfg.Email.SMTPHost != ""
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp not configured")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.Email.FromEmail, m.cfg.Email.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		m.cfg.Email.SMTPHost,
		m.cfg.Email.SMTPPort,
		m.cfg.Email.SMTPUsername,
		m.cfg.Email.SMTPPassword,
	)
	return d.DialAndSend(msg)
}

func (m *SMTPMailer) SendLeadNotification(to string, lead *models.Lead, planName, providerName string) error {
	subject := fmt.Sprintf("Novo lead: %s interessado em %s", lead.Name, planName)
	body := fmt.Sprintf(`
		<h2>Novo lead recebido no ConectaCG</h2>
		<table>
			<tr><td><b>Nome:</b></td><td>%s</td></tr>
			<tr><td><b>Telefone:</b></td><td>%s</td></tr>
			<tr><td><b>CEP:</b></td><td>%s</td></tr>
			<tr><td><b>Plano:</b></td><td>%s</td></tr>
			<tr><td><b>Data:</b></td><td>%s</td></tr>
		</table>
		<p>Acesse seu painel em <a href="%s/b2b">ConectaCG B2B</a></p>`,
		lead.Name, lead.Phone, lead.Cep, planName,
		time.Now().Format("02/01/2006 15:04"),
		m.cfg.Marketplace.FrontendURL,
	)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) SendPriceAlert(to string, plans []models.Plan, alert *models.PriceAlert) error {
	list := ""
	for _, p := range plans {
		list += fmt.Sprintf("<li><b>%s</b> (%s) - R$ %.2f | %d Mbps</li>", p.Name, p.Provider.Name, p.Price, p.DownloadSpeed)
	}
	body := fmt.Sprintf(`
		<h2>Encontramos planos dentro do seu critério!</h2>
		<p>CEP: %s | Preço máximo: R$ %.2f</p>
		<ul>%s</ul>
		<a href="%s/planos">Ver planos</a>`,
		alert.Cep, alert.MaxPrice, list, m.cfg.Marketplace.FrontendURL,
	)
	return m.send(to, "Alerta ConectaCG: Planos que combinam com você!", body)
}
