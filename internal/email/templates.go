package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type emergencyCallbackEmailData struct {
	baseEmailData
	EmergencyCallback
	Insurance string
}

func renderEmergencyCallback(callback EmergencyCallback) (string, string, error) {
	name := callback.ContactName
	if name == "" {
		name = "unnamed lead"
	}

	content, err := renderEmailTemplate("emergency_callback.html", emergencyCallbackEmailData{
		baseEmailData: baseEmailData{
			Title:      emergencyCallbackTitle,
			Heading:    emergencyCallbackTitle,
			Subheading: fmt.Sprintf("Lead %s scored %d and needs a call now.", callback.LeadID, callback.LeadScore),
		},
		EmergencyCallback: callback,
		Insurance:         insuranceSummary(callback.HasInsurance, callback.ClaimFiled),
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf(subjectEmergencyCallbackFmt, name, callback.LeadScore), content, nil
}

func insuranceSummary(hasInsurance, claimFiled bool) string {
	switch {
	case hasInsurance && claimFiled:
		return "Insured, claim filed"
	case hasInsurance:
		return "Insured, no claim yet"
	default:
		return "No insurance reported"
	}
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
