package config

import "os"

// MailConfig holds SMTP settings for password reset mail.  An empty Host
// means no SMTP server is configured and mail is only logged.
type MailConfig struct {
    Host     string
    Port     int
    Username string
    Password string
    From     string
}

// LoadMailConfig reads SMTP_* variables.  SMTP_PORT and SMTP_FROM become
// required once SMTP_HOST is set.
func LoadMailConfig() MailConfig {
    host := os.Getenv("SMTP_HOST")
    if host == "" {
        return MailConfig{From: envStr("SMTP_FROM", "no-reply@electramart.local")}
    }
    return MailConfig{
        Host:     host,
        Port:     mustInt("SMTP_PORT"),
        Username: os.Getenv("SMTP_USERNAME"),
        Password: os.Getenv("SMTP_PASSWORD"),
        From:     must("SMTP_FROM"),
    }
}
